package orders

import (
	"github.com/go-playground/validator/v10"

	"encore.dev/rlog"
	"encore.dev/storage/sqldb"

	"bigmouth.app/bus"
	"bigmouth.app/orders/business/order"
	"bigmouth.app/orders/store/orders"
)

var ordersDB = sqldb.NewDatabase("orders", sqldb.DatabaseConfig{
	Migrations: "./migrations",
})

var validate = validator.New()

//encore:service
type Service struct {
	business order.Business
	router   *bus.Router
}

func initService() (*Service, error) {
	pgxdb := sqldb.Driver(ordersDB)

	rlog.Info("Initializing order store")
	repo := orders.New(pgxdb)

	s := &Service{
		business: order.NewOrderBusiness(repo, bus.NewPublisher()),
	}
	s.router = bus.NewRouter().
		Handle(bus.Source, bus.DetailTypeRestaurantNotified, s.recordRestaurantNotified)

	return s, nil
}
