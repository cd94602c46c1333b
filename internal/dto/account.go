package dto

import (
	"github.com/bizfolio/biz_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the payload for creating a chart-of-accounts entry.
// Code and accountType are immutable after creation.
type CreateAccountRequest struct {
	Code            string  `json:"code" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	AccountType     string  `json:"accountType" binding:"required,accounttype"`
	ParentAccountID *string `json:"parentAccountID"`
	Description     string  `json:"description"`
}

// UpdateAccountRequest carries the mutable account fields. Nil means unchanged.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string          `json:"accountID"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	AccountType     string          `json:"accountType"`
	NormalBalance   string          `json:"normalBalance"`
	ParentAccountID *string         `json:"parentAccountID,omitempty"`
	Description     string          `json:"description"`
	IsActive        bool            `json:"isActive"`
	Balance         decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     string(a.AccountType),
		NormalBalance:   string(a.AccountType.NormalBalance()),
		ParentAccountID: a.ParentAccountID,
		Description:     a.Description,
		IsActive:        a.IsActive,
		Balance:         a.Balance,
	}
}

// ToAccountResponses converts a slice of domain accounts to responses.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
