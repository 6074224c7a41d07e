package auth

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"loan-portal/internal/domain/document"
	"loan-portal/internal/domain/user"
	"loan-portal/internal/infrastructure/frappe"
)

const loggedUserMethod = "frappe.auth.get_logged_user"

// SessionToken is reported to callers of SignIn; the backend session is a
// cookie, not a token.
const SessionToken = "session-based"

type Store interface {
	Login(ctx context.Context, usr, pwd string) bool
	OpenSession(ctx context.Context, usr, pwd string) (string, bool)
	Logout(ctx context.Context) bool
	CallMethod(ctx context.Context, method string, args, out any) error
	GetDocument(ctx context.Context, doctype, name string, out any) error
	CreateDocument(ctx context.Context, doctype string, data, out any) error
}

type Usecase struct {
	store Store
	log   *zap.Logger
}

func NewUsecase(s Store, log *zap.Logger) *Usecase { return &Usecase{store: s, log: log} }

func (u *Usecase) Login(ctx context.Context, email, password string) bool {
	return u.store.Login(ctx, email, password)
}

func (u *Usecase) Logout(ctx context.Context) bool {
	return u.store.Logout(ctx)
}

// CurrentUser resolves the session's user id and loads its User document.
// It returns nil when nobody is logged in or the backend is unreachable.
func (u *Usecase) CurrentUser(ctx context.Context) *user.User {
	var name string
	if err := u.store.CallMethod(ctx, loggedUserMethod, nil, &name); err != nil {
		u.log.Error("get current user failed", zap.Error(err))
		return nil
	}
	if name == "" {
		return nil
	}
	var out user.User
	if err := u.store.GetDocument(ctx, user.Doctype, name, &out); err != nil {
		u.log.Error("get current user failed", zap.String("user", name), zap.Error(err))
		return nil
	}
	return &out
}

type CreateUserInput struct {
	Email            string `json:"email"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Password         string `json:"password"`
	Phone            string `json:"phone"`
	SendWelcomeEmail bool   `json:"send_welcome_email"`
}

type createUserPayload struct {
	Email            string        `json:"email"`
	FirstName        string        `json:"first_name"`
	LastName         string        `json:"last_name"`
	FullName         string        `json:"full_name"`
	MobileNo         string        `json:"mobile_no,omitempty"`
	UserType         user.Type     `json:"user_type"`
	Enabled          document.Flag `json:"enabled"`
	NewPassword      string        `json:"new_password"`
	SendWelcomeEmail document.Flag `json:"send_welcome_email"`
}

// CreateUser registers an enabled website user.
func (u *Usecase) CreateUser(ctx context.Context, in CreateUserInput) *user.User {
	payload := createUserPayload{
		Email:            in.Email,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		FullName:         strings.TrimSpace(in.FirstName + " " + in.LastName),
		MobileNo:         in.Phone,
		UserType:         user.TypeWebsite,
		Enabled:          1,
		NewPassword:      in.Password,
		SendWelcomeEmail: document.FlagOf(in.SendWelcomeEmail),
	}
	var out user.User
	if err := u.store.CreateDocument(ctx, user.Doctype, payload, &out); err != nil {
		u.log.Error("create user failed", zap.String("email", in.Email), zap.Error(err))
		return nil
	}
	return &out
}

type SignInResult struct {
	Success bool       `json:"success"`
	User    *user.User `json:"user,omitempty"`
	Token   string     `json:"token,omitempty"`
	Error   string     `json:"error,omitempty"`
	// Session is the caller's backend cookie. It is handed back to the
	// caller out of band and never shared between callers.
	Session string `json:"-"`
}

// SignIn opens a backend session for one caller and loads its user. The
// session is returned, not kept on the store.
func (u *Usecase) SignIn(ctx context.Context, email, password string) SignInResult {
	session, ok := u.store.OpenSession(ctx, email, password)
	if !ok {
		return SignInResult{Error: "Invalid credentials"}
	}
	usr := u.CurrentUser(frappe.ContextWithSession(ctx, session))
	return SignInResult{Success: true, User: usr, Token: SessionToken, Session: session}
}
