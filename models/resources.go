package models

// The record types below mirror the server fields of each resource. The id
// is not part of the record: it is tracked by the sync engine. Every field is
// omitempty so a partially filled value doubles as an update patch.

// Client is a customer of the business.
type Client struct {
	BusinessName string `json:"business_name,omitempty"`
	TaxID        string `json:"tax_id,omitempty"`
	Email        string `json:"email,omitempty"`
	BrandFileID  *int64 `json:"brand_file_id,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	TariffID     *int64 `json:"tariff_id,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// Job is a unit of work performed for a client.
type Job struct {
	UserID              int64    `json:"user_id,omitempty"`
	ClientID            int64    `json:"client_id,omitempty"`
	Description         string   `json:"description,omitempty"`
	JobDate             string   `json:"job_date,omitempty"`
	StartTime           string   `json:"start_time,omitempty"`
	EndTime             string   `json:"end_time,omitempty"`
	TypeOfWork          string   `json:"type_of_work,omitempty"`
	StatusID            *int64   `json:"status_id,omitempty"`
	FolderID            *int64   `json:"folder_id,omitempty"`
	ProductServiceID    *int64   `json:"product_service_id,omitempty"`
	MultiplicativeValue float64  `json:"multiplicative_value,omitempty"`
	TariffID            *int64   `json:"tariff_id,omitempty"`
	ManualAmount        *float64 `json:"manual_amount,omitempty"`
	AttachedFiles       []int64  `json:"attached_files,omitempty"`
	Participants        []int64  `json:"participants,omitempty"`
}

// CreditorType classifies who a payment was made to.
type CreditorType string

const (
	CreditorClient   CreditorType = "client"
	CreditorProvider CreditorType = "provider"
	CreditorOther    CreditorType = "other"
)

// Payment is money paid out by the business.
type Payment struct {
	UserID             int64        `json:"user_id,omitempty"`
	PaymentDate        string       `json:"payment_date,omitempty"`
	PaidWithAccount    string       `json:"paid_with_account,omitempty"`
	CreditorType       CreditorType `json:"creditor_type,omitempty"`
	CreditorClientID   *int64       `json:"creditor_client_id,omitempty"`
	CreditorProviderID *int64       `json:"creditor_provider_id,omitempty"`
	CreditorOther      string       `json:"creditor_other,omitempty"`
	Description        string       `json:"description,omitempty"`
	AttachedFiles      []int64      `json:"attached_files,omitempty"`
	CategoryID         int64        `json:"category_id,omitempty"`
	Price              float64      `json:"price,omitempty"`
	ChargeClient       *bool        `json:"charge_client,omitempty"`
	ClientID           *int64       `json:"client_id,omitempty"`
}

// Invoice is a billing document issued to a client or received from a
// provider. Amounts are carried as reported by the server.
type Invoice struct {
	Number       string   `json:"invoice_number,omitempty"`
	ClientID     *int64   `json:"client_id,omitempty"`
	ClientName   string   `json:"client_name,omitempty"`
	ProviderID   *int64   `json:"provider_id,omitempty"`
	ProviderName string   `json:"provider_name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	Subtotal     *float64 `json:"subtotal,omitempty"`
	Total        *float64 `json:"total,omitempty"`
	Status       string   `json:"status,omitempty"`
	IssueDate    string   `json:"issue_date,omitempty"`
	DueDate      string   `json:"due_date,omitempty"`
}

// CategoryType separates income and expense categories.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// Category groups payments and invoices.
type Category struct {
	ParentID *int64       `json:"parent_id,omitempty"`
	Name     string       `json:"name,omitempty"`
	Type     CategoryType `json:"type,omitempty"`
}

// Appointment is a scheduled visit to a client.
type Appointment struct {
	UserID          int64  `json:"user_id,omitempty"`
	ClientID        int64  `json:"client_id,omitempty"`
	JobID           *int64 `json:"job_id,omitempty"`
	AppointmentDate string `json:"appointment_date,omitempty"`
	AppointmentTime string `json:"appointment_time,omitempty"`
	Location        string `json:"location,omitempty"`
	SiteImageFileID *int64 `json:"site_image_file_id,omitempty"`
	AttachedFiles   string `json:"attached_files,omitempty"`
}

// Folder organizes a client's documents.
type Folder struct {
	Name              string `json:"name,omitempty"`
	ParentID          *int64 `json:"parent_id,omitempty"`
	FolderImageFileID string `json:"folder_image_file_id,omitempty"`
	ClientID          int64  `json:"client_id,omitempty"`
	UserID            int64  `json:"user_id,omitempty"`
}
