package role

// Role определяет уровень доступа пользователя
type Role int

const (
	Worker Role = iota // обычный сотрудник мойки
	Admin              // администратор
)

// FromIsAdmin переводит флаг из таблицы пользователей в роль
func FromIsAdmin(isAdmin bool) Role {
	if isAdmin {
		return Admin
	}
	return Worker
}
