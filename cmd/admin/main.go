package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/JulianB-Git/nicolash-frontend/internal/apiclient"
	appcfg "github.com/JulianB-Git/nicolash-frontend/internal/config"
	"github.com/JulianB-Git/nicolash-frontend/internal/dto"
	"github.com/JulianB-Git/nicolash-frontend/internal/report"
	"github.com/JulianB-Git/nicolash-frontend/pkg/validator"
)

const usage = `usage: admin <command> [flags]

commands:
  attendees list   [-page N] [-limit N]
  attendees get    <id>
  attendees create -first NAME -last NAME [-email E] [-dietary D] [-group ID]
  attendees update <id> [-first NAME] [-last NAME] [-email E] [-dietary D] [-group ID]
  attendees delete <id>
  groups list
  groups get       <id>
  groups create    -name NAME [-members ID,ID,...]
  groups delete    <id>
  groups members   <id> -action add|remove -ids ID,ID,...
  upload           <file.csv>
`

// Reads are retried; nothing that writes is.
var readRetry = retry.Strategy{Attempts: 3, Delay: 500 * time.Millisecond, Backoff: 2}

// oauthTokens adapts the identity provider's client-credentials flow to the
// api client's per-call token capability.
type oauthTokens struct {
	src oauth2.TokenSource
}

func (t oauthTokens) Token(_ context.Context) (string, error) {
	tok, err := t.src.Token()
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

func main() {
	zlog.Init()
	log := zlog.Logger

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.New()
	if err := cfg.Load("config.yaml", "", "'"); err != nil {
		log.Fatal().Msgf("failed to load configuration: %v", err)
	}
	clientCfg := appcfg.BuildClientConfig(cfg, &log)
	oauthCfg, err := appcfg.BuildOAuthConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load OAuth config")
	}

	ctx := context.Background()
	creds := clientcredentials.Config{
		ClientID:     oauthCfg.ClientID,
		ClientSecret: oauthCfg.ClientSecret,
		TokenURL:     oauthCfg.TokenURL,
	}
	reports := report.NewLogger(&log, nil)
	defer reports.Close()

	admin := apiclient.NewAdminClient(apiclient.Config{
		BaseURL:  clientCfg.BaseURL,
		Logger:   &log,
		Reporter: reports,
	}, oauthTokens{src: creds.TokenSource(ctx)})

	var runErr error
	switch os.Args[1] {
	case "attendees":
		runErr = runAttendees(ctx, admin, os.Args[2:])
	case "groups":
		runErr = runGroups(ctx, admin, os.Args[2:])
	case "upload":
		runErr = runUpload(ctx, admin, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if runErr != nil {
		log.Fatal().Msg(describe(runErr))
	}
}

// describe turns a client error into operator-facing advice.
func describe(err error) string {
	switch {
	case apiclient.IsAuthentication(err):
		return "authentication failed, check the oauth credentials in config.yaml"
	case apiclient.IsAuthorization(err):
		return "access denied, ask for your identity to be added to the allowlist"
	case apiclient.IsMemberConflict(err):
		return err.Error() + " (remove them from their current group first)"
	default:
		return err.Error()
	}
}

func runAttendees(ctx context.Context, admin *apiclient.AdminClient, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("missing attendees subcommand\n%s", usage)
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("attendees list", flag.ExitOnError)
		page := fs.Int("page", 1, "page number")
		limit := fs.Int("limit", 20, "page size")
		_ = fs.Parse(args[1:])

		var result *apiclient.AttendeesPage
		err := retry.Do(func() error {
			var err error
			result, err = admin.GetAttendees(ctx, *page, *limit)
			return err
		}, readRetry)
		if err != nil {
			return err
		}
		return print(result)

	case "get":
		id, err := requireID(args[1:])
		if err != nil {
			return err
		}
		var attendee *apiclient.Attendee
		err = retry.Do(func() error {
			var err error
			attendee, err = admin.GetAttendee(ctx, id)
			return err
		}, readRetry)
		if err != nil {
			return err
		}
		return print(attendee)

	case "create":
		fs := flag.NewFlagSet("attendees create", flag.ExitOnError)
		first := fs.String("first", "", "first name")
		last := fs.String("last", "", "last name")
		email := fs.String("email", "", "email address")
		dietary := fs.String("dietary", "", "dietary requirement (Vegan|Vegetarian|Other|None)")
		group := fs.String("group", "", "group id")
		_ = fs.Parse(args[1:])

		form := dto.CreateAttendeeRequest{
			FirstName:           *first,
			LastName:            *last,
			Email:               *email,
			DietaryRequirements: *dietary,
			GroupID:             *group,
		}
		if err := validator.Validate(ctx, form); err != nil {
			return err
		}
		attendee, err := admin.CreateAttendee(ctx, apiclient.CreateAttendeeRequest{
			FirstName:           form.FirstName,
			LastName:            form.LastName,
			Email:               form.Email,
			DietaryRequirements: apiclient.DietaryRequirement(form.DietaryRequirements),
			GroupID:             form.GroupID,
		})
		if err != nil {
			return err
		}
		return print(attendee)

	case "update":
		id, err := requireID(args[1:])
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("attendees update", flag.ExitOnError)
		first := fs.String("first", "", "first name")
		last := fs.String("last", "", "last name")
		email := fs.String("email", "", "email address")
		dietary := fs.String("dietary", "", "dietary requirement (Vegan|Vegetarian|Other|None)")
		group := fs.String("group", "", "group id")
		_ = fs.Parse(args[2:])

		form := dto.UpdateAttendeeRequest{
			FirstName:           *first,
			LastName:            *last,
			Email:               *email,
			DietaryRequirements: *dietary,
			GroupID:             *group,
		}
		if err := validator.Validate(ctx, form); err != nil {
			return err
		}
		attendee, err := admin.UpdateAttendee(ctx, id, apiclient.UpdateAttendeeRequest{
			FirstName:           form.FirstName,
			LastName:            form.LastName,
			Email:               form.Email,
			DietaryRequirements: apiclient.DietaryRequirement(form.DietaryRequirements),
			GroupID:             form.GroupID,
		})
		if err != nil {
			return err
		}
		return print(attendee)

	case "delete":
		id, err := requireID(args[1:])
		if err != nil {
			return err
		}
		if err := admin.DeleteAttendee(ctx, id); err != nil {
			return err
		}
		fmt.Println("deleted", id)
		return nil
	}

	return fmt.Errorf("unknown attendees subcommand %q\n%s", args[0], usage)
}

func runGroups(ctx context.Context, admin *apiclient.AdminClient, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("missing groups subcommand\n%s", usage)
	}

	switch args[0] {
	case "list":
		var groups []apiclient.Group
		err := retry.Do(func() error {
			var err error
			groups, err = admin.GetAllGroups(ctx)
			return err
		}, readRetry)
		if err != nil {
			return err
		}
		return print(groups)

	case "get":
		id, err := requireID(args[1:])
		if err != nil {
			return err
		}
		var group *apiclient.Group
		err = retry.Do(func() error {
			var err error
			group, err = admin.GetGroup(ctx, id)
			return err
		}, readRetry)
		if err != nil {
			return err
		}
		return print(group)

	case "create":
		fs := flag.NewFlagSet("groups create", flag.ExitOnError)
		name := fs.String("name", "", "group name")
		members := fs.String("members", "", "comma-separated attendee ids")
		_ = fs.Parse(args[1:])

		form := dto.CreateGroupRequest{Name: *name, MemberIDs: splitIDs(*members)}
		if err := validator.Validate(ctx, form); err != nil {
			return err
		}
		group, err := admin.CreateGroup(ctx, apiclient.CreateGroupRequest{
			Name:      form.Name,
			MemberIDs: form.MemberIDs,
		})
		if err != nil {
			return err
		}
		return print(group)

	case "delete":
		id, err := requireID(args[1:])
		if err != nil {
			return err
		}
		if err := admin.DeleteGroup(ctx, id); err != nil {
			return err
		}
		fmt.Println("deleted", id)
		return nil

	case "members":
		id, err := requireID(args[1:])
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("groups members", flag.ExitOnError)
		action := fs.String("action", "", "add or remove")
		ids := fs.String("ids", "", "comma-separated attendee ids")
		_ = fs.Parse(args[2:])

		form := dto.UpdateGroupMembersRequest{Action: *action, AttendeeIDs: splitIDs(*ids)}
		if err := validator.Validate(ctx, form); err != nil {
			return err
		}
		if err := admin.UpdateGroupMembers(ctx, id, apiclient.MemberAction(form.Action), form.AttendeeIDs); err != nil {
			return err
		}
		fmt.Printf("%s %d attendee(s)\n", form.Action, len(form.AttendeeIDs))
		return nil
	}

	return fmt.Errorf("unknown groups subcommand %q\n%s", args[0], usage)
}

func runUpload(ctx context.Context, admin *apiclient.AdminClient, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("missing upload file\n%s", usage)
	}
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := dto.CheckUploadFile(info.Name(), info.Size()); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := admin.BulkUploadAttendees(ctx, info.Name(), f)
	if err != nil {
		return err
	}

	fmt.Printf("processed %d record(s): %d created, %d duplicate(s), %d failure(s)\n",
		result.TotalRecords, result.SuccessfulCreations, result.Duplicates, result.Failures)
	for _, rowErr := range result.Errors {
		fmt.Printf("  row %d, field %q, value %q: %s\n", rowErr.Row, rowErr.Field, rowErr.Value, rowErr.Message)
	}
	return nil
}

func requireID(args []string) (string, error) {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return "", fmt.Errorf("missing id argument\n%s", usage)
	}
	return args[0], nil
}

func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func print(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
