package postgres

import "github.com/thalyssonDEV/EventSync/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Event{},
	&entity.Registration{},
	&entity.CheckIn{},
	&entity.Review{},
	&entity.Certificate{},
	&entity.Notification{},
}
