package profile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mgurlek/hybit/internal/cli"
	"github.com/mgurlek/hybit/internal/constants"
	"github.com/mgurlek/hybit/internal/profile"
	"github.com/mgurlek/hybit/internal/storage"
)

type ProfileCmd struct {
	Create ProfileCreateCmd `cmd:"" help:"Create your profile."`
	Show   ProfileShowCmd   `cmd:"" default:"withargs" help:"Show the active profile."`
	Delete ProfileDeleteCmd `cmd:"" help:"Delete the active profile."`
	Check  ProfileCheckCmd  `cmd:"" help:"Check whether a username is available."`
}

type ProfileCreateCmd struct {
	FirstName   string `help:"First name."`
	LastName    string `help:"Last name."`
	Username    string `help:"Username (a-z, 0-9, '.' and '_')."`
	Phone       string `help:"National phone number (10 digits)."`
	Age         int    `help:"Age." default:"0"`
	Nationality string `help:"Nationality."`
}

func (c *ProfileCreateCmd) Run(ctx *cli.Context) error {
	if _, err := profile.Active(ctx.Store); err == nil {
		return errors.New("a profile already exists, delete it first")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	if c.FirstName == "" || c.LastName == "" || c.Username == "" {
		if err := c.ask(ctx); err != nil {
			return err
		}
	}

	in := profile.Input{
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Username:    c.Username,
		Phone:       c.Phone,
		Nationality: c.Nationality,
	}
	if c.Age > 0 {
		age := c.Age
		in.Age = &age
	}

	p, err := profile.Create(ctx.Store, in, ctx.Now())
	if err != nil {
		return err
	}
	ctx.Printf("✓ Welcome, %s! (@%s)\n", profile.FullName(p), p.Username)
	return nil
}

// ask runs the onboarding form for missing fields.
func (c *ProfileCreateCmd) ask(ctx *cli.Context) error {
	age := ""
	if c.Age > 0 {
		age = strconv.Itoa(c.Age)
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("First name").Value(&c.FirstName).Validate(required),
			huh.NewInput().Title("Last name").Value(&c.LastName).Validate(required),
		),
		huh.NewGroup(
			huh.NewInput().Title("Username").Value(&c.Username).Validate(func(s string) error {
				ok, err := profile.Available(ctx.Store, s)
				if err != nil {
					return err
				}
				if !ok {
					if verr := profile.ValidateUsername(profile.NormalizeUsername(s)); verr != nil {
						return verr
					}
					return storage.ErrUsernameTaken
				}
				return nil
			}),
			huh.NewInput().
				Title("Phone").
				Description(constants.PhoneCountryPrefix+" XXX XXX XX XX").
				Value(&c.Phone),
			huh.NewInput().Title("Age (optional)").Value(&age).Validate(func(s string) error {
				if s == "" {
					return nil
				}
				if _, err := strconv.Atoi(s); err != nil {
					return fmt.Errorf("enter a number")
				}
				return nil
			}),
			huh.NewInput().Title("Nationality (optional)").Value(&c.Nationality),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if age != "" {
		c.Age, _ = strconv.Atoi(age)
	}
	return nil
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	p, err := profile.Active(ctx.Store)
	if errors.Is(err, storage.ErrNotFound) {
		ctx.Printf("No profile yet. Create one with '%s profile create'.\n", constants.AppName)
		return nil
	}
	if err != nil {
		return err
	}

	ctx.Printf("%s (@%s)\n", profile.FullName(p), p.Username)
	if p.PhoneNumber != "" {
		ctx.Printf("  Phone:       %s %s\n", constants.PhoneCountryPrefix,
			profile.FormatPhone(strings.TrimPrefix(p.PhoneNumber, constants.PhoneCountryPrefix)))
	}
	if p.Age != nil {
		ctx.Printf("  Age:         %d\n", *p.Age)
	}
	if p.Nationality != "" {
		ctx.Printf("  Nationality: %s\n", p.Nationality)
	}
	ctx.Printf("  Member since %s\n", p.CreatedAt.Format(constants.DateFormat))
	return nil
}

type ProfileDeleteCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *ProfileDeleteCmd) Run(ctx *cli.Context) error {
	p, err := profile.Active(ctx.Store)
	if err != nil {
		return err
	}
	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete profile @%s?", p.Username))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}
	if err := profile.Delete(ctx.Store, p.ID); err != nil {
		return err
	}
	ctx.Println("✓ Profile deleted")
	return nil
}

type ProfileCheckCmd struct {
	Username string `arg:"" help:"Username to check."`
}

func (c *ProfileCheckCmd) Run(ctx *cli.Context) error {
	username := profile.NormalizeUsername(c.Username)
	if err := profile.ValidateUsername(username); err != nil {
		return err
	}
	ok, err := profile.Available(ctx.Store, username)
	if err != nil {
		return err
	}
	if ok {
		ctx.Printf("✓ @%s is available\n", username)
	} else {
		ctx.Printf("✗ @%s is taken\n", username)
	}
	return nil
}
