package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	contractController "nhatro_backend/internals/features/rental/contracts/controller"
	propertyController "nhatro_backend/internals/features/rental/properties/controller"
	roomController "nhatro_backend/internals/features/rental/rooms/controller"
	tenantController "nhatro_backend/internals/features/rental/tenants/controller"
)

func RentalRoutes(r fiber.Router, db *gorm.DB) {
	prop := propertyController.NewPropertyController(db)
	p := r.Group("/properties")
	p.Get("/", prop.ListProperties)
	p.Get("/:id", prop.GetProperty)
	p.Post("/", prop.CreateProperty)
	p.Patch("/:id", prop.UpdateProperty)
	p.Delete("/:id", prop.DeleteProperty)

	room := roomController.NewRoomController(db)
	rm := r.Group("/rooms")
	rm.Get("/", room.ListRooms)
	rm.Get("/grouped-by-property", room.GroupedByProperty)
	rm.Get("/occupied-with-tenant", room.OccupiedWithTenant)
	rm.Get("/:id", room.GetRoom)
	rm.Post("/", room.CreateRoom)
	rm.Patch("/:id", room.UpdateRoom)
	rm.Delete("/:id", room.DeleteRoom)

	tenant := tenantController.NewTenantController(db)
	t := r.Group("/tenants")
	t.Get("/", tenant.ListTenants)
	t.Get("/:id", tenant.GetTenant)
	t.Post("/", tenant.CreateTenant)
	t.Patch("/:id", tenant.UpdateTenant)
	t.Delete("/:id", tenant.DeleteTenant)

	contract := contractController.NewContractController(db)
	ct := r.Group("/contracts")
	ct.Get("/", contract.ListContracts)
	ct.Post("/", contract.CreateContract)
	ct.Post("/assign", contract.AssignTenant)
	ct.Post("/unassign", contract.UnassignTenant)
	ct.Post("/transfer", contract.TransferTenant)
	ct.Patch("/:id/status", contract.UpdateContractStatus)
}
