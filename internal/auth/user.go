// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

/*
Package auth handles identity: registration, login, logout, and the user
entity shared by the rest of the application.

# Architecture

  - Entities: User with its Role and MemberLevel enumerations.
  - Tokens: HS256 JWTs issued by [sec.TokenService]; each carries a jti so
    logout can revoke a single session via Redis.
  - Storage: Postgres for accounts, Redis for revocation marks.
*/
package auth

import "time"

// Role discriminates ordinary members from administrators.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// MemberLevel is the membership tier of a user.
type MemberLevel string

const (
	LevelBasic   MemberLevel = "Basic"
	LevelPremium MemberLevel = "Premium"
)

// User is the master identity record.
type User struct {
	ID           int         `json:"id"`
	FullName     string      `json:"fullName"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         Role        `json:"role"`
	MemberLevel  MemberLevel `json:"memberLevel"`
	PhoneNumber  *string     `json:"phoneNumber"`
	PictureURL   *string     `json:"pictureUrl"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the administrator role.
func (user *User) IsAdmin() bool {
	return user.Role == RoleAdmin
}
