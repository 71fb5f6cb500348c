package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"peopleops.org/internal/hr"
	"peopleops.org/internal/session"
)

var (
	loginUser     string
	loginPassword string

	signupUsername string
	signupEmail    string
	signupPassword string
	signupRole     string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		password := loginPassword
		if password == "" {
			fmt.Fprint(os.Stderr, "password: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}
		s, err := hr.SignIn(cmd.Context(), rt.client, rt.store, hr.Credentials{
			UsernameOrEmail: loginUser,
			Password:        password,
		})
		if err != nil {
			return err
		}
		fmt.Printf("signed in as %s (%s)\n", displayName(s), s.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		if err := hr.SignOut(rt.store); err != nil {
			return err
		}
		fmt.Println("signed out")
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		err = hr.SignUp(cmd.Context(), rt.client, hr.SignUpRequest{
			Username: signupUsername,
			Email:    signupEmail,
			Password: signupPassword,
			Role:     signupRole,
		})
		if err != nil {
			return err
		}
		fmt.Printf("account %s created; sign in with `peopleops login`\n", signupUsername)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		s, ok := rt.store.Get()
		if !ok {
			fmt.Println("not signed in")
			return nil
		}
		fmt.Printf("user:  %s\n", displayName(s))
		fmt.Printf("role:  %s\n", s.Role)
		if info, ok := session.InspectToken(s.Token); ok && !info.ExpiresAt.IsZero() {
			if session.Expired(s.Token, time.Now()) {
				fmt.Printf("token: expired at %s\n", info.ExpiresAt.Format(time.RFC3339))
			} else {
				fmt.Printf("token: valid until %s\n", info.ExpiresAt.Format(time.RFC3339))
			}
		}
		return nil
	},
}

func displayName(s session.Session) string {
	if s.User.Name != "" {
		return s.User.Name
	}
	return s.User.ID
}

func init() {
	loginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "username or email (required)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (prompted when omitted)")
	_ = loginCmd.MarkFlagRequired("user")

	signupCmd.Flags().StringVar(&signupUsername, "username", "", "username (required)")
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "email (required)")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "password (required)")
	signupCmd.Flags().StringVar(&signupRole, "role", "Employee", "role: Admin, Manager, or Employee")
	_ = signupCmd.MarkFlagRequired("username")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("password")
}
