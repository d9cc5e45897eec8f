package repoargs

type CreateUser struct {
	Username string
	Account  string
	Password string
}
