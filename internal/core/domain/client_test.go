package domain

import "testing"

func TestUpdateClient_ApplyOnlyTouchesSetFields(t *testing.T) {
	notes := "prefers white gold"
	c := Client{
		ID:        "c1",
		FirstName: "Ana",
		LastName:  "Smith",
		Email:     "ana@example.com",
		Phone:     "555-0100",
		Notes:     &notes,
		Tags:      []string{"vip"},
	}

	name := "Anna"
	UpdateClient{FirstName: &name}.Apply(&c)

	if c.FirstName != "Anna" {
		t.Fatalf("first name not applied: %q", c.FirstName)
	}
	if c.LastName != "Smith" || c.Email != "ana@example.com" || c.Phone != "555-0100" {
		t.Fatalf("untouched fields changed: %+v", c)
	}
	if c.Notes == nil || *c.Notes != notes || len(c.Tags) != 1 {
		t.Fatalf("optional fields changed: %+v", c)
	}
}

func TestUpdateClient_IsEmpty(t *testing.T) {
	if !(UpdateClient{}).IsEmpty() {
		t.Fatalf("zero update should be empty")
	}
	tags := []string{}
	if (UpdateClient{Tags: &tags}).IsEmpty() {
		t.Fatalf("update clearing tags is not empty")
	}
}
