package account

import (
	"strings"

	"github.com/MuhamadAgungGumelar/compta-web/internal/core/backend"
)

// LoginForm is the sign-in form.
type LoginForm struct {
	Email      string `form:"email" validate:"required,email"`
	MotDePasse string `form:"mot_de_passe" validate:"required"`
}

// RegisterForm is the sign-up form. Position applies to utilisateur
// accounts; the two codes apply to comptable accounts.
type RegisterForm struct {
	Role           string `form:"role" validate:"required,oneof=utilisateur comptable"`
	Email          string `form:"email" validate:"required,email"`
	Identite       string `form:"identite" validate:"required"`
	MotDePasse     string `form:"mot_de_passe" validate:"required,min=4"`
	Tel            string `form:"tel" validate:"required,len=8,digits"`
	Position       string `form:"position" validate:"required_if=Role utilisateur"`
	CodeComptable  string `form:"code_comptable" validate:"required_if=Role comptable"`
	CodeEntreprise string `form:"code_entreprise" validate:"required_if=Role comptable"`
}

func (f *RegisterForm) normalize() {
	f.Role = strings.TrimSpace(f.Role)
	f.Email = strings.TrimSpace(f.Email)
	f.Identite = strings.TrimSpace(f.Identite)
	f.Tel = strings.TrimSpace(f.Tel)
	f.Position = strings.TrimSpace(f.Position)
	f.CodeComptable = strings.TrimSpace(f.CodeComptable)
	f.CodeEntreprise = strings.TrimSpace(f.CodeEntreprise)
}

// Request builds the API payload, keeping only the fields of the chosen
// account type.
func (f RegisterForm) Request() backend.RegisterRequest {
	req := backend.RegisterRequest{
		Role:       backend.Role(f.Role),
		Email:      f.Email,
		Identite:   f.Identite,
		MotDePasse: f.MotDePasse,
		Tel:        f.Tel,
	}

	switch req.Role {
	case backend.RoleUtilisateur:
		req.Position = f.Position
	case backend.RoleComptable:
		req.CodeComptable = f.CodeComptable
		req.CodeEntreprise = f.CodeEntreprise
	}
	return req
}
