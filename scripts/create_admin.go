// scripts/create_admin.go
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/kajalsharma987/my-leave-app/config"
	"github.com/kajalsharma987/my-leave-app/database"
	"github.com/kajalsharma987/my-leave-app/models"
)

// Seeds an admin account into the persisted users snapshot so the first
// login does not depend on the open registration endpoint.
func main() {
	cfg := config.Load()
	store := database.Connect(cfg)

	username := "Admin"
	password := "1234"

	users := store.LoadUsers()
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			fmt.Println("admin user already exists with username:", username)
			os.Exit(0)
		}
	}

	users = append(users, models.User{
		Username: username,
		Password: password,
		Role:     models.RoleAdmin,
	})
	store.SaveUsers(users)

	fmt.Println("admin user created successfully")
	fmt.Println("   Username:", username)
	fmt.Println("   Password:", password, "(change it after first login)")
}
