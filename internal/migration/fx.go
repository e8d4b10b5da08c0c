package migration

import (
	clientdomain "github.com/enotehq/enote/internal/client/domain"
	"github.com/enotehq/enote/internal/config"
	employeedomain "github.com/enotehq/enote/internal/employee/domain"
	feedbackdomain "github.com/enotehq/enote/internal/feedback/domain"
	invoicedomain "github.com/enotehq/enote/internal/invoice/domain"
	ownerdomain "github.com/enotehq/enote/internal/owner/domain"
	productdomain "github.com/enotehq/enote/internal/product/domain"
	subscriptiondomain "github.com/enotehq/enote/internal/subscription/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// Versioned SQL migrations exist for postgres. Other dialects,
		// sqlite for local runs in particular, fall back to AutoMigrate.
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		return conn.AutoMigrate(
			&ownerdomain.Owner{},
			&employeedomain.Employee{},
			&clientdomain.Client{},
			&productdomain.Product{},
			&invoicedomain.Invoice{},
			&invoicedomain.Item{},
			&subscriptiondomain.Subscription{},
			&feedbackdomain.Feedback{},
		)
	}),
)
