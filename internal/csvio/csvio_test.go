package csvio

import (
	"strings"
	"testing"

	"curricularace/internal/curriculum"
)

const sampleCSV = `Curriculum,Test Degree
Institution,Test University
Degree Type,BS
Year,2026
System Type,Semester
CIP,11.0101
Courses
Course ID,Prefix,Number,Course Name,Credit Hours,Prerequisites,Corequisites,Strict-Corequisites
C1,CS,101,Intro to Programming,3,,,
C2,CS,102,Data Structures,3,C1,,
`

func TestParseAndLoadPlan(t *testing.T) {
	pf, err := Parse(strings.NewReader(sampleCSV), "sample.csv")
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	if pf.Metadata.Institution != "Test University" {
		t.Errorf("Metadata.Institution = %q, want %q", pf.Metadata.Institution, "Test University")
	}
	if len(pf.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(pf.Rows))
	}

	plan, err := LoadPlan(pf, "sample.csv")
	if err != nil {
		t.Fatalf("LoadPlan() = %v", err)
	}
	if plan.SystemType != curriculum.Semester {
		t.Errorf("SystemType = %q, want semester", plan.SystemType)
	}
	if len(plan.Courses) != 2 {
		t.Fatalf("len(Courses) = %d, want 2", len(plan.Courses))
	}

	c2 := plan.Courses[1]
	if len(c2.Prerequisites) != 1 || c2.Prerequisites[0] != plan.Courses[0].StorageKey {
		t.Errorf("C2 prerequisites = %v, want [%s]", c2.Prerequisites, plan.Courses[0].StorageKey)
	}
}

func TestParseRejectsMissingCoursesMarker(t *testing.T) {
	bad := "Curriculum,Test\nCourse ID,Prefix,Number\n"
	_, err := Parse(strings.NewReader(bad), "bad.csv")
	if err == nil {
		t.Fatal("Parse() = nil, want error for missing Courses marker")
	}
}

func TestParseRejectsMissingRequiredHeader(t *testing.T) {
	bad := "Courses\nCourse ID,Course Name\nC1,Intro\n"
	_, err := Parse(strings.NewReader(bad), "bad.csv")
	if err == nil {
		t.Fatal("Parse() = nil, want error for missing required header column")
	}
}

func TestParseRejectsDuplicateCourseID(t *testing.T) {
	bad := "Courses\nCourse ID,Prefix,Number\nC1,CS,101\nC1,CS,102\n"
	_, err := Parse(strings.NewReader(bad), "bad.csv")
	if err == nil {
		t.Fatal("Parse() = nil, want error for duplicate Course ID")
	}
}

func TestLoadPlanUnknownReference(t *testing.T) {
	csv := "Courses\nCourse ID,Prefix,Number,Prerequisites\nC1,CS,101,DOES-NOT-EXIST\n"
	pf, err := Parse(strings.NewReader(csv), "bad.csv")
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	_, err = LoadPlan(pf, "bad.csv")
	if err == nil {
		t.Fatal("LoadPlan() = nil, want UnknownReference error")
	}
	perr, ok := err.(*curriculum.PlanError)
	if !ok || perr.Kind != curriculum.UnknownReference {
		t.Fatalf("err = %v, want *PlanError with Kind=UnknownReference", err)
	}
}

func TestLoadPlanNaturalKeyCollisionSuffix(t *testing.T) {
	csv := "Courses\nCourse ID,Prefix,Number\nA1,CS,101\nA2,CS,101\n"
	pf, err := Parse(strings.NewReader(csv), "collide.csv")
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	plan, err := LoadPlan(pf, "collide.csv")
	if err != nil {
		t.Fatalf("LoadPlan() = %v", err)
	}
	if plan.Courses[0].StorageKey == plan.Courses[1].StorageKey {
		t.Fatalf("colliding natural keys produced identical storage keys: %q", plan.Courses[0].StorageKey)
	}
	if plan.Courses[0].StorageKey != "CS101_A1" || plan.Courses[1].StorageKey != "CS101_A2" {
		t.Errorf("StorageKeys = %q, %q, want CS101_A1, CS101_A2", plan.Courses[0].StorageKey, plan.Courses[1].StorageKey)
	}
}

func TestParseCreditHoursFallsBackToCourseNumber(t *testing.T) {
	csv := "Courses\nCourse ID,Prefix,Number,Credit Hours\nC1,CS,101,\n"
	pf, err := Parse(strings.NewReader(csv), "fallback.csv")
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	plan, err := LoadPlan(pf, "fallback.csv")
	if err != nil {
		t.Fatalf("LoadPlan() = %v", err)
	}
	if plan.Courses[0].CreditHours != 1 {
		t.Errorf("CreditHours = %v, want 1 (from trailing course-number digits)", plan.Courses[0].CreditHours)
	}
}

func TestParseCreditHoursMalformed(t *testing.T) {
	csv := "Courses\nCourse ID,Prefix,Number,Credit Hours\nC1,CS,101,not-a-number\n"
	pf, err := Parse(strings.NewReader(csv), "malformed.csv")
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	_, err = LoadPlan(pf, "malformed.csv")
	if err == nil {
		t.Fatal("LoadPlan() = nil, want MalformedCsv error")
	}
}
