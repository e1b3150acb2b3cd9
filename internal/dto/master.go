package dto

import (
	"time"

	"github.com/kicho-app/kicho_backend/internal/core/domain"
)

// UpdateAccountRequest is a versioned account update. Version must match the
// stored row or the call fails with a conflict; the caller then decides
// whether to re-read and retry or discard its edit.
type UpdateAccountRequest struct {
	Name           *string `json:"name,omitempty"`
	DefaultTaxCode *string `json:"defaultTaxCode,omitempty"`
	IsActive       *bool   `json:"isActive,omitempty"`
	Version        int64   `json:"version" binding:"required,min=1"`
}

// ReparentMasterRequest moves a node in a master hierarchy. A nil parentCode
// makes the node a root.
type ReparentMasterRequest struct {
	ParentCode *string `json:"parentCode"`
}

// AccountResponse is a persisted account.
type AccountResponse struct {
	AccountCode    string    `json:"accountCode"`
	Name           string    `json:"name"`
	ParentCode     *string   `json:"parentCode,omitempty"`
	DefaultTaxCode *string   `json:"defaultTaxCode,omitempty"`
	IsActive       bool      `json:"isActive"`
	Version        int64     `json:"version"`
	CreatedAt      time.Time `json:"createdAt"`
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountCode:    a.AccountCode,
		Name:           a.Name,
		ParentCode:     a.ParentCode,
		DefaultTaxCode: a.DefaultTaxCode,
		IsActive:       a.IsActive,
		Version:        a.Version,
		CreatedAt:      a.CreatedAt,
		LastUpdatedAt:  a.LastUpdatedAt,
	}
}
