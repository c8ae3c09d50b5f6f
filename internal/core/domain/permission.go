package domain

import "encoding/json"

// Resource is one of the protected entity categories.
type Resource string

const (
	ResourceClients      Resource = "clients"
	ResourceProducts     Resource = "products"
	ResourceVendors      Resource = "vendors"
	ResourceTransactions Resource = "transactions"
	ResourceUsers        Resource = "users"
)

// Resources lists every known resource in a stable order.
var Resources = []Resource{
	ResourceClients,
	ResourceProducts,
	ResourceVendors,
	ResourceTransactions,
	ResourceUsers,
}

// Valid reports whether r belongs to the closed resource set.
func (r Resource) Valid() bool {
	for _, known := range Resources {
		if r == known {
			return true
		}
	}
	return false
}

// Action is an operation that can be granted on a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ActionSet holds the grants for a single resource.
type ActionSet struct {
	Read   bool `json:"read"`
	Create bool `json:"create"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// Allows reports whether the action is granted. Unknown actions are denied.
func (a ActionSet) Allows(action Action) bool {
	switch action {
	case ActionRead:
		return a.Read
	case ActionCreate:
		return a.Create
	case ActionUpdate:
		return a.Update
	case ActionDelete:
		return a.Delete
	default:
		return false
	}
}

// PermissionMatrix maps each resource to its granted actions.
// A missing resource, a missing action or a nil matrix all deny.
type PermissionMatrix map[Resource]ActionSet

// Allows reports whether the matrix grants action on resource.
func (m PermissionMatrix) Allows(resource Resource, action Action) bool {
	if m == nil {
		return false
	}
	set, ok := m[resource]
	if !ok {
		return false
	}
	return set.Allows(action)
}

// UnmarshalJSON decodes the stored matrix and drops resources outside the
// known set. A JSON null leaves the matrix nil.
func (m *PermissionMatrix) UnmarshalJSON(data []byte) error {
	var raw map[string]ActionSet
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = MatrixFrom(raw)
	return nil
}

// MatrixFrom builds a matrix from store data keyed by resource name, keeping
// only known resources. A nil map yields a nil matrix.
func MatrixFrom(raw map[string]ActionSet) PermissionMatrix {
	if raw == nil {
		return nil
	}
	out := make(PermissionMatrix, len(raw))
	for name, set := range raw {
		r := Resource(name)
		if !r.Valid() {
			continue
		}
		out[r] = set
	}
	return out
}

// HasPermission is the pure permission check over an already resolved user.
func HasPermission(user *UserProfile, resource Resource, action Action) bool {
	if user == nil || user.Role == nil {
		return false
	}
	return user.Role.Permissions.Allows(resource, action)
}
