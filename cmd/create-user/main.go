package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"clinic_agenda_go/config"
	"clinic_agenda_go/db"
	"clinic_agenda_go/models"
	"clinic_agenda_go/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New User ===")
	fmt.Println()

	fmt.Print("Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Printf("Role (%s/%s/%s/%s) [%s]: ", models.RoleAdmin, models.RoleProfessional, models.RoleReceptionist, models.RolePatient, models.RoleReceptionist)
	role, _ := reader.ReadString('\n')
	role = strings.TrimSpace(role)
	if role == "" {
		role = models.RoleReceptionist
	}

	// Validate inputs
	if name == "" || email == "" {
		log.Fatal("Name and email are required")
	}

	switch role {
	case models.RoleAdmin, models.RoleProfessional, models.RoleReceptionist, models.RolePatient:
	default:
		log.Fatalf("Unknown role %q", role)
	}

	// Check if user already exists
	var existingUser models.User
	if err := db.DB.Where("email = ?", email).First(&existingUser).Error; err == nil {
		log.Fatalf("User with email %s already exists", email)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Role:     role,
		IsActive: true,
	}

	if err := db.DB.Create(user).Error; err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	// Professionals get the default Monday-Friday schedule so their
	// agenda is bookable right away.
	if user.IsProfessional() {
		if err := services.CreateDefaultWorkingHours(db.DB, user.ID); err != nil {
			log.Fatalf("Failed to seed working hours: %v", err)
		}
		fmt.Println()
		fmt.Println("Seeded default working hours (Mon-Fri).")
	}

	fmt.Println()
	fmt.Println("✓ User created successfully!")
	fmt.Printf("  ID: %s\n", user.ID)
	fmt.Printf("  Name: %s\n", user.Name)
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Printf("  Role: %s\n", user.Role)
}
