package teams

import (
	"reflect"
	"testing"
)

func TestTeamJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}
	teamType := reflect.TypeOf(Team{})
	fields := []fieldCheck{
		{"ID", "id"},
		{"Name", "name"},
		{"League", "league,omitempty"},
		{"Stadium", "stadium,omitempty"},
		{"StadiumCapacity", "stadiumCapacity,omitempty"},
		{"Badge", "badge,omitempty"},
	}
	for _, fc := range fields {
		f, ok := teamType.FieldByName(fc.name)
		if !ok {
			t.Fatalf("missing field %s", fc.name)
		}
		if tag := f.Tag.Get("json"); tag != fc.tag {
			t.Fatalf("field %s expected tag %s, got %s", fc.name, fc.tag, tag)
		}
	}
}
