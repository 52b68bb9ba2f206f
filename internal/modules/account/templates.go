package account

import (
	"github.com/MuhamadAgungGumelar/compta-web/internal/core/backend"
	"github.com/MuhamadAgungGumelar/compta-web/internal/view"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// LoginPage renders the sign-in form.
func LoginPage(form LoginForm, failures map[string]string, serverError string) cmp.Node {
	return g.Div(
		g.Class("card max-w-md mx-auto"),
		g.H2(cmp.Text("Sign in")),
		view.ErrorLine(serverError),
		g.Form(
			g.Method("post"), g.Action("/login"),
			field("Email", "email", "email", form.Email, failures),
			field("Password", "mot_de_passe", "password", "", failures),
			g.Button(g.Type("submit"), g.Class("btn btn-primary"), cmp.Text("Sign in")),
		),
		g.P(cmp.Text("No account yet? "), g.A(g.Href("/register"), cmp.Text("Register"))),
	)
}

// RegisterPageProps is the data behind the registration form.
type RegisterPageProps struct {
	Form        RegisterForm
	Failures    map[string]string
	ServerError string
	Codes       []backend.EnterpriseCode
	Accountants []backend.Accountant
}

// RegisterPage renders the sign-up form. Role-specific fields are grouped
// so the browser can toggle them; the server validates them per role.
func RegisterPage(p RegisterPageProps) cmp.Node {
	f := p.Form

	return g.Div(
		g.Class("card max-w-md mx-auto"),
		g.H2(cmp.Text("Create an account")),
		cmp.If(p.ServerError != "", g.Div(g.Class("alert alert-danger"), cmp.Text(p.ServerError))),
		g.Form(
			g.Method("post"), g.Action("/register"),
			g.Div(
				g.Class("form-group"),
				g.Label(g.For("role"), cmp.Text("Account type")),
				g.Select(
					g.ID("role"), g.Name("role"),
					option("", "Select", f.Role),
					option(string(backend.RoleUtilisateur), "User", f.Role),
					option(string(backend.RoleComptable), "Accountant", f.Role),
				),
				feedback("role", p.Failures),
			),
			g.FieldSet(
				g.Class("role-utilisateur"),
				field("Position", "position", "text", f.Position, p.Failures),
			),
			g.FieldSet(
				g.Class("role-comptable"),
				g.Div(
					g.Class("form-group"),
					g.Label(g.For("code_entreprise"), cmp.Text("Enterprise code")),
					g.Select(
						g.ID("code_entreprise"), g.Name("code_entreprise"),
						option("", "Select an enterprise", f.CodeEntreprise),
						cmp.Map(p.Codes, func(code backend.EnterpriseCode) cmp.Node {
							label := code.CodeEntreprise
							if code.Nom != "" {
								label += " - " + code.Nom
							}
							return option(code.CodeEntreprise, label, f.CodeEntreprise)
						}),
					),
					feedback("code_entreprise", p.Failures),
				),
				g.Div(
					g.Class("form-group"),
					g.Label(g.For("code_comptable"), cmp.Text("Accountant code")),
					g.Select(
						g.ID("code_comptable"), g.Name("code_comptable"),
						option("", "Select an accountant", f.CodeComptable),
						cmp.Map(p.Accountants, func(a backend.Accountant) cmp.Node {
							return option(a.CodeComptable, a.CodeComptable+" - "+a.Identite, f.CodeComptable)
						}),
					),
					feedback("code_comptable", p.Failures),
				),
			),
			field("Identity", "identite", "text", f.Identite, p.Failures),
			field("Email", "email", "email", f.Email, p.Failures),
			field("Password", "mot_de_passe", "password", "", p.Failures),
			field("Phone", "tel", "tel", f.Tel, p.Failures),
			g.Button(g.Type("submit"), g.Class("btn btn-primary"), cmp.Text("Register")),
		),
	)
}

func field(label, name, typ, value string, failures map[string]string) cmp.Node {
	class := "form-control"
	if failures[name] != "" {
		class += " is-invalid"
	}
	return g.Div(
		g.Class("form-group"),
		g.Label(g.For(name), cmp.Text(label)),
		g.Input(g.ID(name), g.Name(name), g.Type(typ), g.Value(value), g.Class(class)),
		feedback(name, failures),
	)
}

func feedback(name string, failures map[string]string) cmp.Node {
	msg := failures[name]
	return cmp.If(msg != "", g.Div(g.Class("invalid-feedback"), cmp.Text(msg)))
}

func option(value, label, selected string) cmp.Node {
	return g.Option(g.Value(value), cmp.If(value == selected, g.Selected()), cmp.Text(label))
}
