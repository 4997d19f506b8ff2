package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/roomhub-io/go-booking-client/booking"
	"github.com/roomhub-io/go-booking-client/gateway"
	"github.com/roomhub-io/go-booking-client/internal/config"
	"github.com/roomhub-io/go-booking-client/internal/logging"
	"github.com/roomhub-io/go-booking-client/session"
	"github.com/roomhub-io/go-booking-client/subscriptions"
	"github.com/roomhub-io/go-booking-client/token"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("Error: %s\n", err)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	logger := logging.New(c.GetEnv(), c.GetLogLevel())

	if len(args) == 0 {
		displayAppname(c.GetAppName())
		usage()
		return nil
	}

	vault, err := token.NewVault(token.NewFileRepo(c.GetDataFolder()))
	if err != nil {
		return errors.Wrap(err, "[run] token.NewVault")
	}

	gw, err := gateway.New(c.GetBaseURL(), vault,
		gateway.WithLogger(logger),
		gateway.WithTimeout(c.GetHTTPTimeout()))
	if err != nil {
		return errors.Wrap(err, "[run] gateway.New")
	}

	store, err := session.NewStore(gw, session.NewFileRepo(c.GetDataFolder()),
		session.WithLogger(logger),
		session.WithExpiredHandler(func() {
			fmt.Printf("Session expired, please sign in again: %s\n", c.GetLoginPath())
		}))
	if err != nil {
		return errors.Wrap(err, "[run] session.NewStore")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*c.GetHTTPTimeout())
	defer cancel()

	command, rest := args[0], args[1:]
	switch command {
	case "login":
		return cmdLogin(ctx, store, rest)
	case "otp":
		return cmdOTP(ctx, store, rest)
	case "logout":
		store.Logout(ctx)
		fmt.Println("Logged out")
		return nil
	case "status":
		return cmdStatus(store)
	case "me":
		return cmdMe(ctx, store)
	case "orgs":
		return cmdOrgs(store)
	case "switch-org":
		return cmdSwitchOrg(ctx, store, rest)
	case "search":
		return cmdSearch(ctx, booking.NewClient(gw), rest)
	case "quote":
		return cmdQuote(ctx, booking.NewClient(gw), rest)
	case "book":
		return cmdBook(ctx, booking.NewClient(gw), rest)
	case "bookings":
		return cmdBookings(ctx, booking.NewClient(gw))
	case "cancel":
		return cmdCancel(ctx, booking.NewClient(gw), rest)
	case "plans":
		return cmdPlans(ctx, subscriptions.NewClient(gw))
	default:
		usage()
		return errors.Errorf("unknown command %q", command)
	}
}

func cmdLogin(ctx context.Context, store *session.Store, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: login <email> <password>")
	}
	if err := store.Login(ctx, args[0], args[1]); err != nil {
		return err
	}
	if store.OTPPending() {
		fmt.Printf("One-time code sent to %s. Complete with: otp <code>\n", store.OTPEmail())
		return nil
	}
	fmt.Printf("Signed in as %s\n", store.User().Email)
	return nil
}

func cmdOTP(ctx context.Context, store *session.Store, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: otp <code>")
	}
	if err := store.ConfirmOTP(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("Signed in as %s\n", store.User().Email)
	return nil
}

func cmdStatus(store *session.Store) error {
	fmt.Printf("State: %s\n", store.State())
	if user := store.User(); user != nil {
		fmt.Printf("User:  %s (%s)\n", user.Email, user.Role)
	}
	if org := store.CurrentOrganization(); org != nil {
		fmt.Printf("Org:   %s (%s)\n", org.Name, org.ID)
	}
	return nil
}

func cmdMe(ctx context.Context, store *session.Store) error {
	user, err := store.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		fmt.Println("Not signed in")
		return nil
	}
	fmt.Printf("%s <%s> role=%s\n", user.FullName, user.Email, user.Role)
	return nil
}

func cmdOrgs(store *session.Store) error {
	orgList := store.Organizations()
	if len(orgList) == 0 {
		fmt.Println("No organizations")
		return nil
	}
	current := store.CurrentOrganization()
	for _, org := range orgList {
		marker := " "
		if current != nil && org.ID == current.ID {
			marker = "*"
		}
		fmt.Printf("%s %s  %s\n", marker, org.ID, org.Name)
	}
	return nil
}

func cmdSwitchOrg(ctx context.Context, store *session.Store, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: switch-org <organization-id>")
	}
	if err := store.SwitchOrganization(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("Switched to %s\n", args[0])
	return nil
}

func cmdSearch(ctx context.Context, client *booking.Client, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: search <city> [check-in check-out]")
	}
	params := booking.SearchParams{City: args[0], Limit: 20}
	if len(args) == 3 {
		checkIn, err := booking.ParseDate(args[1])
		if err != nil {
			return err
		}
		checkOut, err := booking.ParseDate(args[2])
		if err != nil {
			return err
		}
		params.CheckIn, params.CheckOut = &checkIn, &checkOut
	}

	result, err := client.SearchProperties(ctx, params)
	if err != nil {
		return err
	}
	fmt.Printf("%d properties\n", result.Total)
	for _, property := range result.Properties {
		fmt.Printf("  %s  %s (%s) from %s %s\n",
			property.ID, property.Name, property.City, property.MinPrice, property.Currency)
	}
	return nil
}

func cmdQuote(ctx context.Context, client *booking.Client, args []string) error {
	if len(args) != 5 {
		return errors.New("usage: quote <property-id> <room-type-id> <check-in> <check-out> <rooms>")
	}
	checkIn, err := booking.ParseDate(args[2])
	if err != nil {
		return err
	}
	checkOut, err := booking.ParseDate(args[3])
	if err != nil {
		return err
	}
	rooms, err := parsePositive(args[4])
	if err != nil {
		return err
	}

	quote, err := client.Quote(ctx, booking.QuoteRequest{
		PropertyID: args[0],
		RoomTypeID: args[1],
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		NumRooms:   rooms,
	})
	if err != nil {
		return err
	}
	if !quote.Available {
		fmt.Println("Not available for those dates")
		return nil
	}
	fmt.Printf("Available (%d rooms left), total %s %s for %d nights\n",
		quote.RemainingRooms, quote.TotalPrice, quote.Currency, checkIn.Nights(checkOut))
	return nil
}

func cmdBook(ctx context.Context, client *booking.Client, args []string) error {
	if len(args) != 5 {
		return errors.New("usage: book <property-id> <room-type-id> <check-in> <check-out> <rooms>")
	}
	checkIn, err := booking.ParseDate(args[2])
	if err != nil {
		return err
	}
	checkOut, err := booking.ParseDate(args[3])
	if err != nil {
		return err
	}
	rooms, err := parsePositive(args[4])
	if err != nil {
		return err
	}

	booked, err := client.CreateBooking(ctx, booking.Create{
		PropertyID: args[0],
		RoomTypeID: args[1],
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		RoomsCount: rooms,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Booking %s created (%s), %d nights, total %s %s\n",
		booked.ID, booked.Status, booked.Nights(), booked.TotalPrice, booked.Currency)
	return nil
}

func cmdBookings(ctx context.Context, client *booking.Client) error {
	bookings, err := client.ListBookings(ctx)
	if err != nil {
		return err
	}
	if len(bookings) == 0 {
		fmt.Println("No bookings")
		return nil
	}
	for _, b := range bookings {
		fmt.Printf("%s  %s -> %s  %s  %s %s\n",
			b.ID, b.CheckIn, b.CheckOut, b.Status, b.TotalPrice, b.Currency)
	}
	return nil
}

func cmdCancel(ctx context.Context, client *booking.Client, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: cancel <booking-id>")
	}
	if err := client.CancelBooking(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("Booking %s cancelled\n", args[0])
	return nil
}

func cmdPlans(ctx context.Context, client *subscriptions.Client) error {
	plans, err := client.Plans(ctx)
	if err != nil {
		return err
	}
	for _, plan := range plans {
		marker := " "
		if plan.Popular {
			marker = "*"
		}
		fmt.Printf("%s %-12s %8s %s/month  %s\n",
			marker, plan.Name, plan.Price, plan.Currency, plan.Description)
	}
	return nil
}

func parsePositive(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n <= 0 {
		return 0, errors.Errorf("%q is not a positive number", s)
	}
	return n, nil
}

func usage() {
	fmt.Println(`Commands:
  login <email> <password>       Sign in
  otp <code>                     Complete a one-time-code challenge
  logout                         Sign out
  status                         Show session state
  me                             Show the current profile
  orgs                           List organization memberships
  switch-org <id>                Change the active organization
  search <city> [in out]         Search properties
  quote <prop> <room> <in> <out> <rooms>
  book <prop> <room> <in> <out> <rooms>
  bookings                       List bookings
  cancel <booking-id>            Cancel a booking
  plans                          List subscription plans`)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
