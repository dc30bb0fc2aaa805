package models

// All returns every model in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Account{},
		&AuthToken{},
		&Profile{},
		&PlanOption{},
		&Payment{},
		&Payer{},
		&Transaction{},
	}
}
