package models

// Resource table names. Each one names a cache table (cache_<name>), the
// table_name discriminator of queue items and, by default, the API endpoint.
const (
	TableClients      = "clients"
	TableJobs         = "jobs"
	TablePayments     = "payments"
	TableInvoices     = "invoices"
	TableCategories   = "categories"
	TableAppointments = "appointments"
	TableFolders      = "folders"
)

// ResourceTables lists every synchronized resource in display order.
var ResourceTables = []string{
	TableClients,
	TableJobs,
	TablePayments,
	TableInvoices,
	TableCategories,
	TableAppointments,
	TableFolders,
}

// IsResourceTable reports whether name is one of [ResourceTables].
func IsResourceTable(name string) bool {
	for _, t := range ResourceTables {
		if t == name {
			return true
		}
	}
	return false
}
