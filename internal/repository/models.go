package repository

import "go.mongodb.org/mongo-driver/bson/primitive"

// LeakStatus tracks where a leak is in its lifecycle. Stored as a plain
// string in both the metadata and status collections.
type LeakStatus string

const (
	LeakStatusNew        LeakStatus = "new"
	LeakStatusInProgress LeakStatus = "in-progress"
	LeakStatusFailed     LeakStatus = "failed"
	LeakStatusFinished   LeakStatus = "finished"
	LeakStatusDisabled   LeakStatus = "disabled"
	LeakStatusUnknown    LeakStatus = "unknown"
)

// Metadata describes one parsed leak. Only rows with Status finished are
// candidates for delivery; the remaining fields are descriptive and opaque
// to the delivery flow.
type Metadata struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	LeakID           string             `bson:"leak_id"`
	Parser           string             `bson:"parser,omitempty"`
	FileName         string             `bson:"file_name,omitempty"`
	FilePath         string             `bson:"filepath,omitempty"`
	DateParsed       int64              `bson:"date_parsed,omitempty"`
	FileSize         int64              `bson:"file_size,omitempty"`
	FileLineCount    int64              `bson:"file_line_count,omitempty"`
	ParsedIdentities int64              `bson:"parsed_identities"`
	AlreadyReadLines int64              `bson:"already_read_lines,omitempty"`
	Status           LeakStatus         `bson:"status,omitempty"`
	FileType         string             `bson:"file_type,omitempty"`
	DetectedFields   []string           `bson:"detected_fields,omitempty"`
	LeakURL          string             `bson:"leak_url,omitempty"`
	LeakSource       string             `bson:"leak_source,omitempty"`
}

// Identity is one raw credential row as the parser wrote it. All value
// fields are multi-valued because a single source line can carry several
// emails, passwords and so on. An identity is eligible for delivery iff
// it has at least one password and at least one email or phone.
type Identity struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	LeakID      string              `bson:"leak_id"`
	LineNumber  int64               `bson:"linenumber,omitempty"`
	Emails      []string            `bson:"email,omitempty"`
	Phones      []string            `bson:"phone,omitempty"`
	Passwords   []string            `bson:"password,omitempty"`
	Hashes      map[string][]string `bson:"hash,omitempty"`
	CreditCards []string            `bson:"cc,omitempty"`
	IBANs       []string            `bson:"iban,omitempty"`
	Domains     []string            `bson:"domain,omitempty"`
	BLZs        []string            `bson:"blz,omitempty"`
	Users       []string            `bson:"user,omitempty"`
	IPs         []string            `bson:"ip,omitempty"`
	Dates       []string            `bson:"date,omitempty"`
	Unknown     []string            `bson:"unknown,omitempty"`
}

// Customer is one API consumer. HandledLeaks grows monotonically as leaks
// are delivered; CustomerSalt keys the per-customer identifier hashing and
// must never be empty for an active customer.
type Customer struct {
	CustomerID   int32    `bson:"customer_id"`
	APIKey       string   `bson:"api_key"`
	HandledLeaks []string `bson:"handled_leaks"`
	CustomerSalt string   `bson:"customer_salt"`
}

// Status is the per (customer_id, current_leak_id) progress record. It is
// created on the first delivery of a leak to a customer and becomes
// terminal once LeakStatus is finished and LeakResult is set.
type Status struct {
	CustomerID           int32               `bson:"customer_id"`
	CurrentLeakID        string              `bson:"current_leak_id"`
	IdentitiesLeft       int64               `bson:"identities_left"`
	LastReceivedIdentity *primitive.ObjectID `bson:"last_received_identity,omitempty"`
	LeakStatus           LeakStatus          `bson:"leak_status,omitempty"`
	LeakResult           *LeakResult         `bson:"leak_result,omitempty"`
}

// LeakResult is the customer-reported outcome for one handled leak.
type LeakResult struct {
	IdentitiesReceived int64 `bson:"identities_received"`
	FullMatches        int64 `bson:"full_matches"`
}
