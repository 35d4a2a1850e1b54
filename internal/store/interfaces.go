// Package store holds the persistence layer: per-entity PostgreSQL stores
// plus in-memory implementations used in tests.
package store

import (
	"context"

	"github.com/MohamadRiza/happytime/internal/catalog"
	"github.com/MohamadRiza/happytime/internal/model"
)

// ProductStore persists catalog products. ListProducts satisfies
// catalog.Source so a store can feed the query engine directly.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
	CreateProduct(ctx context.Context, p *catalog.Product) error
	UpdateProduct(ctx context.Context, p *catalog.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// VacancyStore persists job vacancies.
type VacancyStore interface {
	ListVacancies(ctx context.Context) ([]model.Vacancy, error)
	GetVacancy(ctx context.Context, id string) (*model.Vacancy, error)
	CreateVacancy(ctx context.Context, v *model.Vacancy) error
	UpdateVacancy(ctx context.Context, v *model.Vacancy) error
	DeleteVacancy(ctx context.Context, id string) error
}

// ApplicationStore persists job applications.
type ApplicationStore interface {
	ListApplications(ctx context.Context) ([]model.Application, error)
	GetApplication(ctx context.Context, id string) (*model.Application, error)
	GetApplicationByCode(ctx context.Context, code, email string) (*model.Application, error)
	CreateApplication(ctx context.Context, a *model.Application) error
	UpdateApplicationStatus(ctx context.Context, id, status string) error
}

// CustomerStore persists registered customers.
type CustomerStore interface {
	GetCustomer(ctx context.Context, id string) (*model.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*model.Customer, error)
	CreateCustomer(ctx context.Context, c *model.Customer) error
	UpdateCustomer(ctx context.Context, c *model.Customer) error
}

// AdminStore looks up console administrators.
type AdminStore interface {
	GetAdminByUsername(ctx context.Context, username string) (*model.AdminUser, error)
}

// MessageStore persists contact-form messages.
type MessageStore interface {
	ListMessages(ctx context.Context) ([]model.Message, error)
	GetMessage(ctx context.Context, id string) (*model.Message, error)
	CreateMessage(ctx context.Context, m *model.Message) error
	MarkMessageRead(ctx context.Context, id string) error
	DeleteMessage(ctx context.Context, id string) error
}
