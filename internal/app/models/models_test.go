package models

import "testing"

func TestAttachHelpersSetBothSides(t *testing.T) {
	subject := &Subject{Name: "CS"}
	course := &Course{Number: "2413"}
	subject.AddCourse(course)
	if course.Subject != subject {
		t.Error("AddCourse did not set the back-reference")
	}
	if len(subject.Courses) != 1 || subject.Courses[0] != course {
		t.Error("AddCourse did not append the course")
	}

	campus := &Campus{Name: "NORM"}
	building := &Building{Name: "SEC"}
	campus.AddBuilding(building)
	if building.Campus != campus || len(campus.Buildings) != 1 {
		t.Error("AddBuilding did not link both sides")
	}

	room := &Room{Number: "102"}
	building.AddRoom(room)
	if room.Building != building || len(building.Rooms) != 1 {
		t.Error("AddRoom did not link both sides")
	}

	term := &Term{DisplayName: "Fall 2017", Year: 2017, Semester: SemesterFall}
	block := &TermBlock{Name: "1"}
	term.AddBlock(block)
	if block.Term != term || len(term.Blocks) != 1 {
		t.Error("AddBlock did not link both sides")
	}
}

func TestTermBlockDisplayName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"1", "Full Semester"},
		{"2", "Module 1"},
		{"3", "Module 2"},
		{"DEC", "December"},
		{"EXAM", "EXAM"},
	}

	for _, tt := range tests {
		block := &TermBlock{Name: tt.name}
		if got := block.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNaturalKeys(t *testing.T) {
	term := &Term{DisplayName: "Fall 2017", Year: 2017, Semester: SemesterFall}
	block := &TermBlock{Name: "1"}
	term.AddBlock(block)

	if key := block.Key(); key.Term != "Fall 2017" || key.Name != "1" {
		t.Errorf("block key = %+v", key)
	}

	section := &Section{CRN: "12345", BlockID: 7}
	if key := section.Key(); key.CRN != "12345" || key.BlockID != 7 {
		t.Errorf("section key = %+v", key)
	}

	subject := &Subject{Name: "CS"}
	course := &Course{Number: "2413"}
	subject.AddCourse(course)
	if key := course.Key(); key.Subject != "CS" || key.Number != "2413" {
		t.Errorf("course key = %+v", key)
	}
}
