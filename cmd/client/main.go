// Command client is a small CLI front-end for the CourseConnect API. Login
// state is kept in a session file under the user config dir, so commands can
// be run one at a time the way a browser session spans page loads.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"courseconnect/internal/client"
	"courseconnect/internal/client/session"
)

// Default server base URL; can override with COURSECONNECT_SERVER env var or --server flag.
var serverBaseURL = "http://localhost:5000"

func main() {
	cmd := flag.String("cmd", "courses", "Command: register|login|logout|whoami|courses|add|remove")
	name := flag.String("name", "", "Full name (register)")
	email := flag.String("email", "", "Email (register/login)")
	studentID := flag.String("studentid", "", "Student ID (register)")
	password := flag.String("password", "", "Password (register/login)")
	code := flag.String("code", "", "Course code (add/remove)")
	serverFlag := flag.String("server", "", "Override server base URL (e.g. https://api.example.com)")
	sessionFlag := flag.String("session", "", "Override session file path")
	flag.Parse()

	if env := os.Getenv("COURSECONNECT_SERVER"); env != "" {
		serverBaseURL = strings.TrimRight(env, "/")
	}
	if *serverFlag != "" {
		serverBaseURL = strings.TrimRight(*serverFlag, "/")
	}

	sessionPath := *sessionFlag
	if sessionPath == "" {
		var err error
		sessionPath, err = session.DefaultPath()
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	}

	api := client.New(serverBaseURL)
	sessions := session.NewStore(sessionPath)
	controller := client.NewController(api, sessions, os.Stdout)
	ctx := context.Background()

	var err error
	switch *cmd {
	case "register":
		err = registerFlow(ctx, api, *name, *email, *studentID, *password)
	case "login":
		err = loginFlow(ctx, api, sessions, controller, *email, *password)
	case "logout":
		err = sessions.Clear()
		if err == nil {
			fmt.Println("Logged out.")
		}
	case "whoami":
		err = whoami(sessions)
	case "courses":
		err = controller.Render(ctx)
	case "add":
		if *code == "" {
			err = fmt.Errorf("--code required")
		} else {
			err = controller.Add(ctx, *code)
		}
	case "remove":
		if *code == "" {
			err = fmt.Errorf("--code required")
		} else {
			err = controller.Remove(ctx, *code)
		}
	default:
		err = fmt.Errorf("unknown command: %s", *cmd)
	}

	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func registerFlow(ctx context.Context, api *client.Client, name, email, studentID, password string) error {
	if name == "" || email == "" || studentID == "" || password == "" {
		return fmt.Errorf("--name, --email, --studentid and --password are required")
	}
	profile, err := api.Register(ctx, name, email, studentID, password)
	if err != nil {
		return err
	}
	fmt.Printf("Registration successful! You can now login as %s.\n", profile.Email)
	return nil
}

// loginFlow stores the session and immediately renders the enrollment view,
// the same switch-to-courses behavior a successful login triggers in the web
// front-end.
func loginFlow(ctx context.Context, api *client.Client, sessions *session.Store, controller *client.Controller, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("--email and --password are required")
	}
	profile, err := api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := sessions.SetCurrentStudentID(profile.ID); err != nil {
		return err
	}
	if err := sessions.SetCurrentStudentInfo(profile); err != nil {
		return err
	}
	fmt.Printf("Login successful! Hi, %s (%s)\n", profile.FullName, profile.StudentID)
	return controller.Render(ctx)
}

func whoami(sessions *session.Store) error {
	var profile client.Profile
	if !sessions.CurrentStudentInfo(&profile) || profile.ID == "" {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s (%s) <%s>\n", profile.FullName, profile.StudentID, profile.Email)
	return nil
}
