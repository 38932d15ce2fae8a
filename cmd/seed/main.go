package main

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"courseconnect/internal/catalog"
	"courseconnect/internal/config"
	"courseconnect/internal/db"
	"courseconnect/internal/model"
	"courseconnect/internal/repository"
)

// demoPassword is the login password for every seeded demo student.
const demoPassword = "password123"

type demoStudent struct {
	fullName  string
	email     string
	studentID string
	courses   []string // catalog codes
}

var demoStudents = []demoStudent{
	{fullName: "Alice Johnson", email: "alice@example.com", studentID: "S1001", courses: []string{"CS101", "MATH201"}},
	{fullName: "Bruno Martins", email: "bruno@example.com", studentID: "S1002", courses: []string{"ENG110"}},
	{fullName: "Chen Wei", email: "chen@example.com", studentID: "S1003", courses: nil},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Student{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	studentRepo := repository.NewStudentRepository(gormDB)
	ctx := context.Background()

	log.Println("Seeding demo students into database...")
	seeded, updated, err := seedStudents(ctx, studentRepo, demoStudents)
	if err != nil {
		log.Fatalf("Failed to seed students: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New students created: %d", seeded)
	log.Printf("  - Existing students updated: %d", updated)
	log.Printf("  - Demo password for all accounts: %s", demoPassword)
}

// seedStudents creates demo students or refreshes their enrollment if they
// already exist.
func seedStudents(ctx context.Context, repo repository.StudentRepository, students []demoStudent) (seeded int, updated int, err error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
	if err != nil {
		return 0, 0, fmt.Errorf("hash demo password: %w", err)
	}

	for _, demo := range students {
		courses, err := resolveCourses(demo.courses)
		if err != nil {
			return seeded, updated, err
		}

		existing, err := repo.FindByEmail(ctx, demo.email)
		if err != nil && err != gorm.ErrRecordNotFound {
			return seeded, updated, fmt.Errorf("error checking student %s: %w", demo.email, err)
		}

		if existing != nil {
			existing.FullName = demo.fullName
			existing.StudentID = demo.studentID
			existing.Courses = courses
			if err := repo.Save(ctx, existing); err != nil {
				return seeded, updated, fmt.Errorf("error updating student %s: %w", demo.email, err)
			}
			updated++
			continue
		}

		student := &model.Student{
			FullName:     demo.fullName,
			Email:        demo.email,
			StudentID:    demo.studentID,
			PasswordHash: string(hash),
			Courses:      courses,
		}
		if err := repo.Create(ctx, student); err != nil {
			return seeded, updated, fmt.Errorf("error creating student %s: %w", demo.email, err)
		}
		seeded++
	}

	return seeded, updated, nil
}

func resolveCourses(codes []string) (model.CourseList, error) {
	courses := model.CourseList{}
	for _, code := range codes {
		course, ok := catalog.Find(code)
		if !ok {
			return nil, fmt.Errorf("unknown catalog code in seed data: %s", code)
		}
		courses = append(courses, course)
	}
	return courses, nil
}
