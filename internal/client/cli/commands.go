package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/favkeeper/internal/client/client"
	"github.com/urfave/cli/v3"
)

func userFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "User name (prompted when omitted)",
	}
}

func itemArg() []cli.Argument {
	return []cli.Argument{&cli.StringArg{Name: "id", UsageText: "item id"}}
}

func (a *App) commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "register",
			Usage:  "Create an account",
			Flags:  []cli.Flag{userFlag()},
			Action: a.register,
		},
		{
			Name:   "login",
			Usage:  "Log in and remember the session token",
			Flags:  []cli.Flag{userFlag()},
			Action: a.login,
		},
		{
			Name:   "logout",
			Usage:  "Forget the session token",
			Action: a.logout,
		},
		{
			Name:   "health",
			Usage:  "Check that the server and its store are reachable",
			Action: a.health,
		},
		{
			Name:    "favourites",
			Aliases: []string{"fav"},
			Usage:   "List and edit favourites",
			Commands: []*cli.Command{
				{
					Name:    "list",
					Aliases: []string{"ls"},
					Usage:   "Show all favourites",
					Action:  a.listFavourites,
				},
				{
					Name:      "add",
					Usage:     "Add an item to favourites",
					Arguments: itemArg(),
					Action:    a.addFavourite,
				},
				{
					Name:      "remove",
					Aliases:   []string{"rm"},
					Usage:     "Remove an item from favourites",
					Arguments: itemArg(),
					Action:    a.removeFavourite,
				},
			},
		},
	}
}

func (a *App) userName(cmd *cli.Command) (string, error) {
	if name := cmd.String("user"); name != "" {
		return name, nil
	}
	return GetSimpleText(a.reader, "Enter user name", a.out)
}

func (a *App) register(ctx context.Context, cmd *cli.Command) error {
	userName, err := a.userName(cmd)
	if err != nil {
		return err
	}

	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	password2, err := GetPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password2)

	msg, err := a.client.Register(ctx, userName, string(password), string(password2))
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) login(ctx context.Context, cmd *cli.Command) error {
	userName, err := a.userName(cmd)
	if err != nil {
		return err
	}

	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	token, err := a.client.Login(ctx, userName, string(password))
	if err != nil {
		return err
	}

	if err := a.tokens.Save(token); err != nil {
		return err
	}

	a.logger.Info("logged in", "user", userName)
	return nil
}

func (a *App) logout(context.Context, *cli.Command) error {
	if err := a.tokens.Clear(); err != nil {
		return err
	}
	a.logger.Info("logged out")
	return nil
}

func (a *App) health(ctx context.Context, _ *cli.Command) error {
	if err := a.client.Health(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}

// withToken runs fn with the saved token. A rejected token is dropped so
// the next run asks for a fresh login.
func (a *App) withToken(fn func(token string) ([]string, error)) error {
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}

	favourites, err := fn(token)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.logger.Warn("session expired, please log in again")
			_ = a.tokens.Clear()
		}
		return err
	}

	a.printFavourites(favourites)
	return nil
}

func (a *App) printFavourites(favourites []string) {
	if len(favourites) == 0 {
		fmt.Fprintln(a.out, "(no favourites)")
		return
	}
	for _, f := range favourites {
		fmt.Fprintln(a.out, f)
	}
}

func (a *App) listFavourites(ctx context.Context, _ *cli.Command) error {
	return a.withToken(func(token string) ([]string, error) {
		return a.client.Favourites(ctx, token)
	})
}

func (a *App) addFavourite(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return errors.New("item id is required")
	}
	return a.withToken(func(token string) ([]string, error) {
		return a.client.AddFavourite(ctx, token, id)
	})
}

func (a *App) removeFavourite(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return errors.New("item id is required")
	}
	return a.withToken(func(token string) ([]string, error) {
		return a.client.RemoveFavourite(ctx, token, id)
	})
}
