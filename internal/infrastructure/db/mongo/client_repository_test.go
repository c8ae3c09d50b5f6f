package mongo

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zafiro/crm/internal/core/domain"
)

func TestSearchFilter_QuotesQuery(t *testing.T) {
	filter := searchFilter("a.b*")

	or, ok := filter["$or"].(bson.A)
	if !ok || len(or) != 3 {
		t.Fatalf("expected $or over three fields, got %v", filter)
	}

	for i, field := range []string{"first_name", "last_name", "email"} {
		clause := or[i].(bson.M)
		re, ok := clause[field].(primitive.Regex)
		if !ok {
			t.Fatalf("clause %d: expected regex on %s, got %v", i, field, clause)
		}
		if re.Options != "i" {
			t.Fatalf("expected case-insensitive regex, got %q", re.Options)
		}
		compiled := regexp.MustCompile("(?i)" + re.Pattern)
		if !compiled.MatchString("xxA.B*yy") || compiled.MatchString("aXbb") {
			t.Fatalf("pattern %q is not a literal substring match", re.Pattern)
		}
	}
}

func TestClientSet_OnlySetFields(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	email := "new@example.com"
	tags := []string{"vip"}

	set := clientSet(domain.UpdateClient{Email: &email, Tags: &tags}, ts)

	if len(set) != 3 {
		t.Fatalf("expected updated_at, email and tags, got %v", set)
	}
	if set["updated_at"] != ts || set["email"] != email {
		t.Fatalf("unexpected $set: %v", set)
	}
	if _, ok := set["first_name"]; ok {
		t.Fatalf("unset field must not be written")
	}
}

func TestToUserProfile(t *testing.T) {
	doc := mongoProfile{
		ID:     "u1",
		Email:  "sam@example.com",
		RoleID: "r1",
		Active: true,
		Roles: []mongoRole{{
			ID:   "r1",
			Name: "Manager",
			Permissions: map[string]domain.ActionSet{
				"clients": {Read: true, Update: true},
				"reports": {Read: true},
			},
		}},
	}

	p, err := toUserProfile(doc)
	if err != nil {
		t.Fatalf("toUserProfile returned error: %v", err)
	}
	if p.Role == nil || p.Role.Name != domain.RoleManager {
		t.Fatalf("unexpected role: %+v", p.Role)
	}
	if !domain.HasPermission(p, domain.ResourceClients, domain.ActionUpdate) {
		t.Fatalf("expected clients:update")
	}
	if len(p.Role.Permissions) != 1 {
		t.Fatalf("unknown resources should be dropped: %v", p.Role.Permissions)
	}
}

func TestToUserProfile_NoRole(t *testing.T) {
	p, err := toUserProfile(mongoProfile{ID: "u1", Active: true})
	if err != nil {
		t.Fatalf("toUserProfile returned error: %v", err)
	}
	if p.Role != nil || domain.HasPermission(p, domain.ResourceClients, domain.ActionRead) {
		t.Fatalf("profile without role must deny: %+v", p)
	}
}

func TestToUserProfile_UnknownRole(t *testing.T) {
	_, err := toUserProfile(mongoProfile{ID: "u1", Roles: []mongoRole{{ID: "r1", Name: "ADMIN"}}})
	if !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}
