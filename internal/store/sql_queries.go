package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/horrygame/ficarchive/models"
)

// Column sets shared by the query builders below. Order matters: the
// repositories scan rows in this order.
var (
	userColumns = []string{"id", "username", "password_hash", "telegram_chat_id", "is_admin", "created_at", "last_login_at"}
	ficColumns  = []string{"id", "title", "summary", "chapters", "submitted_by", "status", "mark", "age_rating", "created_at", "updated_at"}
)

func buildInsertUserQuery(user models.User, chatID any) (string, []any, error) {
	return sq.Insert(user.TableName()).
		Columns(userColumns...).
		Values(user.ID, user.Username, user.PasswordHash, chatID, user.IsAdmin, user.CreatedAt, user.LastLoginAt).
		ToSql()
}

func buildSelectUserByUsernameQuery(username string) (string, []any, error) {
	return sq.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"username": username}).
		ToSql()
}

func buildSelectUserByChatIDQuery(chatID string) (string, []any, error) {
	return sq.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"telegram_chat_id": chatID}).
		ToSql()
}

func buildUpdateUserQuery(user models.User, chatID any) (string, []any, error) {
	return sq.Update(user.TableName()).
		Set("password_hash", user.PasswordHash).
		Set("telegram_chat_id", chatID).
		Set("last_login_at", user.LastLoginAt).
		Where(sq.Eq{"id": user.ID}).
		ToSql()
}

func buildInsertFicQuery(fic models.Fic, chapters string) (string, []any, error) {
	return sq.Insert(fic.TableName()).
		Columns(ficColumns...).
		Values(fic.ID, fic.Title, fic.Summary, chapters, fic.SubmittedBy, fic.Status, fic.Mark, fic.AgeRating, fic.CreatedAt, fic.UpdatedAt).
		ToSql()
}

func buildSelectFicByIDQuery(id string) (string, []any, error) {
	return sq.Select(ficColumns...).
		From(models.Fic{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildSelectFicsByStatusQuery(status string) (string, []any, error) {
	return sq.Select(ficColumns...).
		From(models.Fic{}.TableName()).
		Where(sq.Eq{"status": status}).
		OrderBy("created_at").
		ToSql()
}

func buildUpdateFicQuery(fic models.Fic, chapters string) (string, []any, error) {
	return sq.Update(fic.TableName()).
		Set("title", fic.Title).
		Set("summary", fic.Summary).
		Set("chapters", chapters).
		Set("status", fic.Status).
		Set("mark", fic.Mark).
		Set("age_rating", fic.AgeRating).
		Set("updated_at", fic.UpdatedAt).
		Where(sq.Eq{"id": fic.ID}).
		ToSql()
}

func buildDeleteFicQuery(id string) (string, []any, error) {
	return sq.Delete(models.Fic{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
}
