package models

// Tables lists every model in migration order.
var Tables = []interface{}{
	&Salon{},
	&User{},
	&ServiceCategory{},
	&Service{},
	&Professional{},
	&Appointment{},
	&Material{},
	&StockMovement{},
	&Transaction{},
	&ReminderLog{},
	&SiteSettings{},
}
