package handler

import (
	"github.com/zafiro/crm/internal/core/domain"
)

// --- Request → domain input ---

func toNewClient(req createClientRequest) domain.NewClient {
	return domain.NewClient{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Birthdate:   req.Birthdate,
		Preferences: toPreferences(req.Preferences),
		Tags:        req.Tags,
		Notes:       req.Notes,
		Address:     toAddress(req.Address),
	}
}

func toUpdateClient(req updateClientRequest) domain.UpdateClient {
	return domain.UpdateClient{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Birthdate:   req.Birthdate,
		Preferences: toPreferences(req.Preferences),
		Tags:        req.Tags,
		Notes:       req.Notes,
		Address:     toAddress(req.Address),
	}
}

func toPreferences(p *preferencesPayload) *domain.Preferences {
	if p == nil {
		return nil
	}
	return &domain.Preferences{Gemstones: p.Gemstones, Metals: p.Metals, Styles: p.Styles}
}

func toAddress(a *addressPayload) *domain.Address {
	if a == nil {
		return nil
	}
	return &domain.Address{
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

// --- Domain → HTTP response ---

func toClientResponse(c domain.Client) clientResponse {
	resp := clientResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Birthdate: c.Birthdate,
		Tags:      c.Tags,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if c.Preferences != nil {
		resp.Preferences = &preferencesPayload{
			Gemstones: c.Preferences.Gemstones,
			Metals:    c.Preferences.Metals,
			Styles:    c.Preferences.Styles,
		}
	}
	if c.Address != nil {
		resp.Address = &addressPayload{
			Street:     c.Address.Street,
			City:       c.Address.City,
			State:      c.Address.State,
			PostalCode: c.Address.PostalCode,
			Country:    c.Address.Country,
		}
	}
	return resp
}

func toListResponse(clients []domain.Client) listClientsResponse {
	items := make([]clientResponse, len(clients))
	for i, c := range clients {
		items[i] = toClientResponse(c)
	}
	return listClientsResponse{Data: items, Count: len(items)}
}

func toMeResponse(u *domain.UserProfile) meResponse {
	resp := meResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Phone:       u.Phone,
		AvatarURL:   u.AvatarURL,
		Permissions: make(map[string]permissionActions, len(domain.Resources)),
	}
	if u.Role != nil {
		resp.Role = string(u.Role.Name)
	}
	for _, r := range domain.Resources {
		resp.Permissions[string(r)] = permissionActions{
			Read:   domain.HasPermission(u, r, domain.ActionRead),
			Create: domain.HasPermission(u, r, domain.ActionCreate),
			Update: domain.HasPermission(u, r, domain.ActionUpdate),
			Delete: domain.HasPermission(u, r, domain.ActionDelete),
		}
	}
	return resp
}
