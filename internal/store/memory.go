package store

import (
	"context"
	"strings"
	"sync"

	"github.com/MohamadRiza/happytime/internal/catalog"
	"github.com/MohamadRiza/happytime/internal/model"
)

// Memory is an in-memory implementation of every store interface. It backs
// unit tests and keeps insertion order for list operations so derivations
// over it are deterministic.
type Memory struct {
	mu           sync.RWMutex
	products     []catalog.Product
	vacancies    []model.Vacancy
	applications []model.Application
	customers    []model.Customer
	admins       []model.AdminUser
	messages     []model.Message
}

func NewMemory() *Memory {
	return &Memory{}
}

// Products

func (m *Memory) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]catalog.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *Memory) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *Memory) CreateProduct(ctx context.Context, p *catalog.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = append(m.products, *p)
	return nil
}

func (m *Memory) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == p.ID {
			m.products[i] = *p
			return nil
		}
	}
	return model.ErrNotFound
}

func (m *Memory) DeleteProduct(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

// Vacancies

func (m *Memory) ListVacancies(ctx context.Context) ([]model.Vacancy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Vacancy, len(m.vacancies))
	copy(out, m.vacancies)
	return out, nil
}

func (m *Memory) GetVacancy(ctx context.Context, id string) (*model.Vacancy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, v := range m.vacancies {
		if v.ID == id {
			cp := v
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *Memory) CreateVacancy(ctx context.Context, v *model.Vacancy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vacancies = append(m.vacancies, *v)
	return nil
}

func (m *Memory) UpdateVacancy(ctx context.Context, v *model.Vacancy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.vacancies {
		if m.vacancies[i].ID == v.ID {
			m.vacancies[i] = *v
			return nil
		}
	}
	return model.ErrNotFound
}

func (m *Memory) DeleteVacancy(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.vacancies {
		if m.vacancies[i].ID == id {
			m.vacancies = append(m.vacancies[:i], m.vacancies[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

// Applications

func (m *Memory) ListApplications(ctx context.Context) ([]model.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Application, len(m.applications))
	copy(out, m.applications)
	return out, nil
}

func (m *Memory) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.applications {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *Memory) GetApplicationByCode(ctx context.Context, code, email string) (*model.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.applications {
		if strings.EqualFold(a.ApplicationCode, code) && strings.EqualFold(a.Email, email) {
			cp := a
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *Memory) CreateApplication(ctx context.Context, a *model.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applications = append(m.applications, *a)
	return nil
}

func (m *Memory) UpdateApplicationStatus(ctx context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.applications {
		if m.applications[i].ID == id {
			m.applications[i].Status = status
			return nil
		}
	}
	return model.ErrNotFound
}

// Customers

func (m *Memory) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.customers {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *Memory) GetCustomerByEmail(ctx context.Context, email string) (*model.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.customers {
		if strings.EqualFold(c.Email, email) {
			cp := c
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *Memory) CreateCustomer(ctx context.Context, c *model.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.customers {
		if strings.EqualFold(existing.Email, c.Email) {
			return model.ErrDuplicateEmail
		}
	}
	m.customers = append(m.customers, *c)
	return nil
}

func (m *Memory) UpdateCustomer(ctx context.Context, c *model.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.customers {
		if m.customers[i].ID == c.ID {
			m.customers[i].Name = c.Name
			m.customers[i].Phone = c.Phone
			m.customers[i].BusinessDetails = c.BusinessDetails
			return nil
		}
	}
	return model.ErrNotFound
}

// Admins

func (m *Memory) GetAdminByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.admins {
		if a.Username == username {
			cp := a
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

// AddAdmin seeds an admin user; test helper.
func (m *Memory) AddAdmin(a model.AdminUser) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admins = append(m.admins, a)
}

// Messages

func (m *Memory) ListMessages(ctx context.Context) ([]model.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Message, len(m.messages))
	copy(out, m.messages)
	return out, nil
}

func (m *Memory) GetMessage(ctx context.Context, id string) (*model.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, msg := range m.messages {
		if msg.ID == id {
			cp := msg
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *Memory) CreateMessage(ctx context.Context, msg *model.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *Memory) MarkMessageRead(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.messages {
		if m.messages[i].ID == id {
			m.messages[i].Read = true
			return nil
		}
	}
	return model.ErrNotFound
}

func (m *Memory) DeleteMessage(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.messages {
		if m.messages[i].ID == id {
			m.messages = append(m.messages[:i], m.messages[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}
