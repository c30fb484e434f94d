package model

import "github.com/google/uuid"

type Principal struct {
	UserID uuid.UUID
	Role   UserRole
	Phone  string
}

func (p Principal) IsClient() bool {
	return p.Role == UserRoleClient
}

func (p Principal) IsDriver() bool {
	return p.Role == UserRoleDriver
}

func (p Principal) IsOperator() bool {
	return p.Role == UserRoleOperator
}
