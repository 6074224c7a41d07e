package customer

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"loan-portal/internal/domain/customer"
	"loan-portal/internal/domain/user"
	"loan-portal/internal/usecase/auth"
)

type Store interface {
	GetDocument(ctx context.Context, doctype, name string, out any) error
	CreateDocument(ctx context.Context, doctype string, data, out any) error
	UpdateDocument(ctx context.Context, doctype, name string, data, out any) error
}

// UserCreator is the part of the auth usecase Register needs.
type UserCreator interface {
	CreateUser(ctx context.Context, in auth.CreateUserInput) *user.User
}

type Usecase struct {
	store Store
	users UserCreator
	log   *zap.Logger
}

func NewUsecase(s Store, users UserCreator, log *zap.Logger) *Usecase {
	return &Usecase{store: s, users: users, log: log}
}

type CreateInput struct {
	CustomerName string `json:"customer_name"`
	EmailID      string `json:"email_id"`
	MobileNo     string `json:"mobile_no"`
	DateOfBirth  string `json:"date_of_birth"`
	Nationality  string `json:"nationality"`
	Address      string `json:"address"`
}

type createPayload struct {
	CustomerName           string `json:"customer_name"`
	CustomerType           string `json:"customer_type"`
	CustomerGroup          string `json:"customer_group"`
	Territory              string `json:"territory"`
	EmailID                string `json:"email_id"`
	MobileNo               string `json:"mobile_no,omitempty"`
	DateOfBirth            string `json:"date_of_birth,omitempty"`
	Nationality            string `json:"nationality,omitempty"`
	CustomerPrimaryAddress string `json:"customer_primary_address,omitempty"`
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) *customer.Customer {
	payload := createPayload{
		CustomerName:           in.CustomerName,
		CustomerType:           customer.DefaultType,
		CustomerGroup:          customer.DefaultGroup,
		Territory:              customer.DefaultTerritory,
		EmailID:                in.EmailID,
		MobileNo:               in.MobileNo,
		DateOfBirth:            in.DateOfBirth,
		Nationality:            in.Nationality,
		CustomerPrimaryAddress: in.Address,
	}
	var out customer.Customer
	if err := u.store.CreateDocument(ctx, customer.Doctype, payload, &out); err != nil {
		u.log.Error("create customer failed", zap.String("email", in.EmailID), zap.Error(err))
		return nil
	}
	return &out
}

func (u *Usecase) Get(ctx context.Context, customerID string) *customer.Customer {
	var out customer.Customer
	if err := u.store.GetDocument(ctx, customer.Doctype, customerID, &out); err != nil {
		u.log.Error("get customer failed", zap.String("customer", customerID), zap.Error(err))
		return nil
	}
	return &out
}

// Patch holds the fields to change, keyed by backend field name.
type Patch map[string]any

func (u *Usecase) Update(ctx context.Context, customerID string, patch Patch) *customer.Customer {
	var out customer.Customer
	if err := u.store.UpdateDocument(ctx, customer.Doctype, customerID, patch, &out); err != nil {
		u.log.Error("update customer failed", zap.String("customer", customerID), zap.Error(err))
		return nil
	}
	return &out
}

type RegisterInput struct {
	CreateInput
	Password string `json:"password"`
}

type Result struct {
	Success bool               `json:"success"`
	Data    *customer.Customer `json:"data,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// Register creates the login identity first, then the borrower profile.
// A failure in the second step leaves the user in place.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) Result {
	first, last := splitName(in.CustomerName)
	usr := u.users.CreateUser(ctx, auth.CreateUserInput{
		Email:     in.EmailID,
		FirstName: first,
		LastName:  last,
		Password:  in.Password,
		Phone:     in.MobileNo,
	})
	if usr == nil {
		return Result{Error: "Failed to create user account"}
	}
	c := u.Create(ctx, in.CreateInput)
	if c == nil {
		return Result{Error: "Failed to create customer record"}
	}
	return Result{Success: true, Data: c}
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
