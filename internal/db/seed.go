package db

import (
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/odnowakanapowa/booking-api/internal/config"
	"github.com/odnowakanapowa/booking-api/internal/models"
)

// catalog is the fixed price list of the cleaning service. IDs are
// grouped by category: furniture 1-9, mattresses 101-102, vehicle
// 201-204, add-ons 301-303. The add-ons are bookable at most once per
// appointment.
var catalog = []models.Service{
	{ID: 1, Name: "Kanapa", Description: "Pranie kanapy, sofy lub wersalki 2-3 osobowej metodą ekstrakcyjną", DurationMin: 120, Price: 200},
	{ID: 2, Name: "Narożnik mały szezlong", Description: "Pranie narożnika 3-4 osobowego typu szezlong bez poduszek metodą ekstrakcyjną", DurationMin: 90, Price: 300},
	{ID: 3, Name: "Narożnik duży L", Description: "Pranie narożnika dużego 4-5 osobowego typu L bez poduszek metodą ekstrakcyjną", DurationMin: 120, Price: 350},
	{ID: 4, Name: "Narożnik duży U", Description: "Pranie narożnika dużego 5-6 osobowego typu U bez poduszek metodą ekstrakcyjną", DurationMin: 150, Price: 450},
	{ID: 5, Name: "Fotel mały", Description: "Pranie małego fotela metodą ekstrakcyjną", DurationMin: 60, Price: 100},
	{ID: 6, Name: "Fotel duży", Description: "Pranie dużego fotela typu Uszak metodą ekstrakcyjną", DurationMin: 90, Price: 150},
	{ID: 7, Name: "Krzesło tapicerowane", Description: "Pranie krzeseł tapicerowanych z oparciem oraz foteli biurkowych", DurationMin: 30, Price: 30},
	{ID: 8, Name: "Puf podnóżek", Description: "Pranie pufy lub podnóżka tapicerowanego", DurationMin: 30, Price: 40},
	{ID: 9, Name: "Poduszka tapicerowana", Description: "Pranie poduszek tapicerowanych będących elementem oparcia", DurationMin: 30, Price: 40},

	{ID: 101, Name: "Materac pojedynczy", Description: "Pranie materaca 1 osobowego do rozmiaru 120x200 cm po jednej stronie", DurationMin: 60, Price: 150},
	{ID: 102, Name: "Materac podwójny", Description: "Pranie materaca 2 osobowego do rozmiaru 200x200 cm po jednej stronie", DurationMin: 90, Price: 250},

	{ID: 201, Name: "Fotele samochodowe", Description: "Pranie tapicerki samochodowej foteli przednich oraz kanapy tylnej", DurationMin: 90, Price: 300},
	{ID: 202, Name: "Dywanik tekstylny", Description: "Pranie 1 szt dywanika tekstylnego", DurationMin: 30, Price: 20},
	{ID: 203, Name: "Podłoga samochodu", Description: "Odkurzanie oraz pranie podłogi samochodu osobowego", DurationMin: 60, Price: 200},
	{ID: 204, Name: "Bonetowanie podsufitki", Description: "Czyszczenie oraz bonetowanie podsufitki samochodu osobowego", DurationMin: 60, Price: 150},

	{ID: 301, Name: "Usuwanie plam", Description: "Usuwanie ponadnormatywnych plam z materiałów tekstylnych", DurationMin: 30, Price: 50, MaxQuantity: 1},
	{ID: 302, Name: "Usuwanie nieprzyjemnych zapachów", Description: "Neutralizacja nieprzyjemnych zapachów pochodzenia biologicznego", DurationMin: 30, Price: 100, MaxQuantity: 1},
	{ID: 303, Name: "Osuszanie", Description: "Osuszanie mebli tapicerowanych po praniu ekstrakcyjnym", DurationMin: 30, Price: 50, MaxQuantity: 1},
}

func Seed(db *gorm.DB, cfg *config.Config) error {
	for _, svc := range catalog {
		svc.Active = true
		svc.Currency = "PLN"
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&svc).Error; err != nil {
			return err
		}
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", cfg.AdminEmail).Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), 12)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        cfg.AdminEmail,
		PasswordHash: string(hashed),
		FirstName:    cfg.AdminFirstName,
		LastName:     cfg.AdminLastName,
		IsAdmin:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	// seed admin skips the e-mail confirmation flow
	confirmed := models.EmailConfirmation{UserID: admin.ID, Token: uuid.NewString(), Confirmed: true}
	if err := db.Create(&confirmed).Error; err != nil {
		return err
	}

	log.Printf("admin user created: %s", cfg.AdminEmail)
	return nil
}
