package postgres

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/zafiro/crm/internal/core/domain"
)

func TestContainsPattern_EscapesWildcards(t *testing.T) {
	cases := map[string]string{
		"smith":     "%smith%",
		"":          "%%",
		"50%":       `%50\%%`,
		"a_b":       `%a\_b%`,
		`back\path`: `%back\\path%`,
	}
	for in, want := range cases {
		if got := containsPattern(in); got != want {
			t.Fatalf("containsPattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildClientUpdate_OnlySetFields(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	name := "X"
	notes := "likes pearls"

	query, args := buildClientUpdate("c1", domain.UpdateClient{FirstName: &name, Notes: &notes}, ts)

	if !strings.HasPrefix(query, "UPDATE clients SET updated_at = $1, first_name = $2, notes = $3 WHERE id = $4 RETURNING ") {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %d", len(args))
	}
	if args[0] != ts || args[1] != "X" || args[2] != "likes pearls" || args[3] != "c1" {
		t.Fatalf("unexpected args: %v", args)
	}
	if strings.Contains(query, "last_name =") || strings.Contains(query, "email =") {
		t.Fatalf("unset fields must not appear in SET: %s", query)
	}
}

func TestBuildClientUpdate_EmptyStillTouchesTimestamp(t *testing.T) {
	query, args := buildClientUpdate("c1", domain.UpdateClient{}, time.Now())

	if !strings.HasPrefix(query, "UPDATE clients SET updated_at = $1 WHERE id = $2 ") {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
}

func TestBuildClientUpdate_Birthdate(t *testing.T) {
	bd := "1990-04-12"
	query, _ := buildClientUpdate("c1", domain.UpdateClient{Birthdate: &bd}, time.Now())
	if !strings.Contains(query, "birthdate = $2::text::date") {
		t.Fatalf("birthdate should be cast to date: %s", query)
	}
}

func TestDecodeRole(t *testing.T) {
	role, err := decodeRole("r1", "Sales", []byte(`{"clients":{"read":true,"create":true},"bogus":{"read":true}}`))
	if err != nil {
		t.Fatalf("decodeRole returned error: %v", err)
	}
	if role.Name != domain.RoleSales {
		t.Fatalf("unexpected role name %q", role.Name)
	}
	if !role.Permissions.Allows(domain.ResourceClients, domain.ActionCreate) {
		t.Fatalf("expected clients:create")
	}
	if len(role.Permissions) != 1 {
		t.Fatalf("unknown resources should be dropped: %v", role.Permissions)
	}
}

func TestDecodeRole_UnknownName(t *testing.T) {
	_, err := decodeRole("r1", "sales", []byte(`{}`))
	if !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestDecodeRole_NullPermissions(t *testing.T) {
	role, err := decodeRole("r1", "Admin", nil)
	if err != nil {
		t.Fatalf("decodeRole returned error: %v", err)
	}
	if role.Permissions.Allows(domain.ResourceUsers, domain.ActionRead) {
		t.Fatalf("missing matrix must deny")
	}
}
