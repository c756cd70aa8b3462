package datastore

import (
	"context"
	"strings"

	"concierge/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUser(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.User)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.User)(nil)).Index("index_app_user_email").Unique().IfNotExists().Column("email").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.User)(nil)).Index("index_app_user_hotel_id").IfNotExists().Column("hotel_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindUserByID(ctx context.Context, db *bun.DB, userID string) (*models.User, error) {
	var user models.User
	err := db.NewSelect().Model(&user).Where("id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByEmail(ctx context.Context, db *bun.DB, email string) (*models.User, error) {
	var user models.User
	err := db.NewSelect().Model(&user).Where("email = ?", strings.ToLower(email)).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(ctx context.Context, db *bun.DB, user *models.User) (*models.User, error) {
	_, err := db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GuestInfoByIDs loads display info for a batch of guest user IDs.
func GuestInfoByIDs(ctx context.Context, db *bun.DB, ids []string) (map[string]*models.GuestDisplayInfo, error) {
	if len(ids) == 0 {
		return map[string]*models.GuestDisplayInfo{}, nil
	}

	var users []*models.User
	err := db.NewSelect().Model(&users).Where("id IN (?)", bun.In(ids)).Scan(ctx)
	if err != nil {
		return nil, err
	}

	infos := make(map[string]*models.GuestDisplayInfo, len(users))
	for _, u := range users {
		infos[u.ID] = &models.GuestDisplayInfo{
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
		}
	}
	return infos, nil
}
