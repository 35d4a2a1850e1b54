package model

import "time"

// Vacancy statuses.
const (
	VacancyStatusActive = "active"
	VacancyStatusClosed = "closed"
)

// Application statuses.
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusReviewed    = "reviewed"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusHired       = "hired"
)

// Vacancy is an open (or closed) position shown on the careers page.
type Vacancy struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Department   string    `json:"department"`
	Location     string    `json:"location"`
	Type         string    `json:"type"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Application is a submitted job application. Exactly one of ResumePath and
// ResumeDriveLink is set: an uploaded file lands on disk, a Google Drive
// link is stored as-is.
type Application struct {
	ID              string    `json:"id"`
	ApplicationCode string    `json:"applicationCode"`
	VacancyID       string    `json:"vacancyId"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	CoverLetter     string    `json:"coverLetter,omitempty"`
	ResumePath      string    `json:"-"`
	ResumeDriveLink string    `json:"resumeDriveLink,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BusinessDetails is the nested step-2 block of customer registration.
type BusinessDetails struct {
	CompanyName  string `json:"companyName"`
	BusinessType string `json:"businessType"`
	TaxID        string `json:"taxId,omitempty"`
	Address      string `json:"address"`
}

// Customer is a registered storefront customer.
type Customer struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	PasswordHash    string          `json:"-"`
	BusinessDetails BusinessDetails `json:"businessDetails"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// AdminUser is a console administrator.
type AdminUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Message is a contact-form message shown in the admin console.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
