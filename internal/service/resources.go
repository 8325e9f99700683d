package service

import (
	"github.com/MKhiriev/go-bizsync/internal/engine"
	"github.com/MKhiriev/go-bizsync/models"
)

// newResource describes a collection served at "/"+table whose records
// carry their id under idKey, both in list responses and in the create
// response.
func newResource[T any](table, idKey string) engine.Resource[T] {
	return engine.Resource[T]{
		Table:     table,
		Endpoint:  "/" + table,
		ListKey:   table,
		IDKey:     idKey,
		ExtractID: engine.ExtractIDField(idKey),
	}
}

func ClientsResource() engine.Resource[models.Client] {
	return newResource[models.Client](models.TableClients, "client_id")
}

func JobsResource() engine.Resource[models.Job] {
	return newResource[models.Job](models.TableJobs, "job_id")
}

func PaymentsResource() engine.Resource[models.Payment] {
	return newResource[models.Payment](models.TablePayments, "payment_id")
}

func InvoicesResource() engine.Resource[models.Invoice] {
	return newResource[models.Invoice](models.TableInvoices, "invoice_id")
}

func CategoriesResource() engine.Resource[models.Category] {
	return newResource[models.Category](models.TableCategories, "category_id")
}

func AppointmentsResource() engine.Resource[models.Appointment] {
	return newResource[models.Appointment](models.TableAppointments, "appointment_id")
}

func FoldersResource() engine.Resource[models.Folder] {
	return newResource[models.Folder](models.TableFolders, "folder_id")
}
