package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-storefront-client/api"
	"github.com/jrsteele09/go-storefront-client/broadcast"
	"github.com/jrsteele09/go-storefront-client/cart"
	"github.com/jrsteele09/go-storefront-client/credentials"
	"github.com/jrsteele09/go-storefront-client/internal/config"
	"github.com/jrsteele09/go-storefront-client/internal/utils"
	"github.com/jrsteele09/go-storefront-client/session"
	"github.com/jrsteele09/go-storefront-client/storage"
	"github.com/jrsteele09/go-storefront-client/theme"
)

// app bundles the explicitly constructed stores. There are no ambient
// singletons; everything is wired here once and passed by reference.
type app struct {
	sessions *session.Store
	carts    *cart.Store
	client   *api.Client
	themes   *theme.Store
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			returnError = fmt.Errorf("panic recovered: %v", r)
		}
	}()

	_ = godotenv.Load()
	c := config.New()
	displayAppname(c.GetAppName())

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if c.GetEnv() != "DEV" {
		log = log.Level(zerolog.InfoLevel)
	}

	kv, err := storage.NewFileKV(c.GetDataFolder(), c.GetStorageFileName())
	if err != nil {
		return err
	}
	creds, err := credentials.NewStore(kv)
	if err != nil {
		return err
	}
	themes, err := theme.NewStore(kv)
	if err != nil {
		return err
	}

	signals, closeSignals, err := newBroadcaster(c, log)
	if err != nil {
		return err
	}
	defer closeSignals()

	client, err := api.NewClient(c.GetAPIBaseURL(), c, api.WithLogger(log))
	if err != nil {
		return err
	}

	sessions, err := session.NewStore(session.Deps{
		API:         client,
		Credentials: creds,
		Broadcast:   signals,
	}, session.WithLogger(log))
	if err != nil {
		return err
	}

	carts, err := cart.NewStore(cart.Deps{
		API:      client,
		Sessions: sessions,
		Signals:  signals,
	}, cart.WithLogger(log))
	if err != nil {
		return err
	}

	ctx := context.Background()
	sessions.Resolve(ctx)

	return commandLoop(ctx, &app{sessions: sessions, carts: carts, client: client, themes: themes})
}

// newBroadcaster picks the cross-context signal channel: Redis pub/sub when
// configured, otherwise an in-process bus.
func newBroadcaster(c config.Config, log zerolog.Logger) (broadcast.Broadcaster, func(), error) {
	addr := c.GetRedisAddr()
	if addr == "" {
		return broadcast.NewBus().NewBroadcaster(), func() {}, nil
	}

	signals, err := broadcast.NewRedis(
		redis.NewClient(&redis.Options{Addr: addr}),
		c.GetCredentialChannel(),
		broadcast.WithLogger(log),
	)
	if err != nil {
		return nil, nil, err
	}
	return signals, func() { _ = signals.Close() }, nil
}

func commandLoop(ctx context.Context, a *app) error {
	fmt.Println("Type 'help' for commands.")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help":
			printHelp()
		case "status":
			printStatus(a)
		case "login":
			if len(fields) != 3 {
				fmt.Println("usage: login <username> <password>")
				continue
			}
			if err := a.sessions.Login(ctx, fields[1], fields[2]); err != nil {
				fmt.Printf("login failed: %s\n", err)
				continue
			}
			fmt.Printf("logged in as %s\n", a.sessions.User().Username)
		case "logout":
			a.sessions.Logout()
			fmt.Println("logged out")
		case "products":
			listProducts(ctx, a)
		case "cart":
			printCart(a)
		case "add":
			addToCart(ctx, a, fields[1:])
		case "update":
			updateItem(ctx, a, fields[1:])
		case "remove":
			removeItem(ctx, a, fields[1:])
		case "clear":
			if a.carts.ClearCart(ctx) {
				fmt.Println("cart cleared")
			} else if err := a.carts.Err(); err != nil {
				fmt.Println(err)
			}
		case "checkout":
			checkoutCart(ctx, a)
		case "users":
			listUsers(ctx, a)
		case "useredit":
			editUser(ctx, a, fields[1:])
		case "usertoggle":
			toggleUser(ctx, a, fields[1:])
		case "theme":
			next, err := a.themes.Toggle()
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("theme: %s\n", next)
		case "quit", "exit":
			return nil
		default:
			fmt.Printf("unknown command %q, try 'help'\n", fields[0])
		}
	}
}

func printHelp() {
	fmt.Println(`commands:
  status                     session and cart summary
  login <username> <pass>    authenticate
  logout                     drop the session
  products                   list the catalog
  cart                       show the cart
  add <productID> [qty]      add a product to the cart
  update <itemID> <qty>      change a line's quantity
  remove <itemID>            remove a line
  clear                      empty the cart
  checkout                   open a payment session for the cart
  users                      list accounts (admin)
  useredit <id> <f> <v>      edit an account field (admin); f is one of
                             username|email|first|last|role|active
  usertoggle <id>            activate/deactivate an account (admin)
  theme                      toggle dark/light
  quit`)
}

func printStatus(a *app) {
	if !a.sessions.IsAuthenticated() {
		fmt.Println("not logged in")
		return
	}
	user := a.sessions.User()
	fmt.Printf("user: %s (%s), admin=%v\n", user.Username, user.Email, a.sessions.IsAdmin())
	fmt.Printf("cart: %d items, total %s\n", a.carts.ItemCount(), a.carts.Total())
}

func listProducts(ctx context.Context, a *app) {
	catalog, err := a.client.Products(ctx)
	if err != nil {
		fmt.Printf("could not load products: %s\n", err)
		return
	}
	for _, p := range catalog {
		stock := "out of stock"
		if p.InStock() {
			stock = fmt.Sprintf("%d in stock", p.Stock)
		}
		fmt.Printf("  %4d  %-30s %10s  (%s)\n", p.ID, p.Name, p.Price, stock)
	}
}

func printCart(a *app) {
	snapshot := a.carts.Cart()
	if snapshot == nil || len(snapshot.Items) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for _, item := range snapshot.Items {
		fmt.Printf("  %4d  %-30s x%d  %10s\n", item.ID, item.Product.Name, item.Quantity, item.Subtotal)
	}
	fmt.Printf("total: %d items, %s\n", snapshot.TotalItems, snapshot.TotalPrice)
}

func addToCart(ctx context.Context, a *app, args []string) {
	if len(args) < 1 {
		fmt.Println("usage: add <productID> [qty]")
		return
	}
	productID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("productID must be a number")
		return
	}
	quantity := 1
	if len(args) > 1 {
		if quantity, err = strconv.Atoi(args[1]); err != nil {
			fmt.Println("qty must be a number")
			return
		}
	}
	if a.carts.AddToCart(ctx, productID, quantity) {
		fmt.Printf("added, cart now has %d items\n", a.carts.ItemCount())
		return
	}
	if err := a.carts.Err(); err != nil {
		fmt.Println(err)
	}
}

func updateItem(ctx context.Context, a *app, args []string) {
	if len(args) != 2 {
		fmt.Println("usage: update <itemID> <qty>")
		return
	}
	itemID, err1 := strconv.ParseInt(args[0], 10, 64)
	quantity, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Println("itemID and qty must be numbers")
		return
	}
	if quantity < 1 {
		// UI-level guard: decrements below 1 mean "remove" instead
		fmt.Println("qty must be at least 1; use 'remove' to drop the line")
		return
	}
	if a.carts.UpdateItem(ctx, itemID, quantity) {
		fmt.Printf("updated, total %s\n", a.carts.Total())
		return
	}
	if err := a.carts.Err(); err != nil {
		fmt.Println(err)
	}
}

func removeItem(ctx context.Context, a *app, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: remove <itemID>")
		return
	}
	itemID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("itemID must be a number")
		return
	}
	if a.carts.RemoveItem(ctx, itemID) {
		fmt.Println("removed")
		return
	}
	if err := a.carts.Err(); err != nil {
		fmt.Println(err)
	}
}

func requireAdmin(a *app) (string, bool) {
	token := a.sessions.Token()
	if token == "" || !a.sessions.IsAdmin() {
		fmt.Println("admin access required")
		return "", false
	}
	return token, true
}

func listUsers(ctx context.Context, a *app) {
	token, ok := requireAdmin(a)
	if !ok {
		return
	}
	users, err := a.client.Users(ctx, token)
	if err != nil {
		fmt.Printf("could not load users: %s\n", err)
		return
	}
	for _, u := range users {
		status := "active"
		if !u.IsActive {
			status = "inactive"
		}
		name := u.FullName()
		if name == "" {
			name = "(no name set)"
		}
		fmt.Printf("  %4d  %-20s %-30s %-8s %-8s %s\n", u.ID, u.Username, u.Email, u.Role, status, name)
	}
}

func editUser(ctx context.Context, a *app, args []string) {
	token, ok := requireAdmin(a)
	if !ok {
		return
	}
	if len(args) != 3 {
		fmt.Println("usage: useredit <id> <field> <value>")
		return
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("id must be a number")
		return
	}

	update := session.AdminUserUpdate{}
	switch args[1] {
	case "username":
		update.Username = utils.Ptr(args[2])
	case "email":
		update.Email = utils.Ptr(args[2])
	case "first":
		update.FirstName = utils.Ptr(args[2])
	case "last":
		update.LastName = utils.Ptr(args[2])
	case "role":
		if args[2] != string(session.RoleAdmin) && args[2] != string(session.RoleUser) {
			fmt.Println("role must be admin or user")
			return
		}
		update.Role = utils.Ptr(session.RoleType(args[2]))
	case "active":
		active, err := strconv.ParseBool(args[2])
		if err != nil {
			fmt.Println("active must be true or false")
			return
		}
		update.IsActive = utils.Ptr(active)
	default:
		fmt.Printf("unknown field %q\n", args[1])
		return
	}

	user, err := a.client.UpdateUser(ctx, token, userID, update)
	if err != nil {
		fmt.Printf("update failed: %s\n", err)
		return
	}
	fmt.Printf("updated %s (role %s)\n", user.Username, user.Role)
}

func toggleUser(ctx context.Context, a *app, args []string) {
	token, ok := requireAdmin(a)
	if !ok {
		return
	}
	if len(args) != 1 {
		fmt.Println("usage: usertoggle <id>")
		return
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("id must be a number")
		return
	}
	if current := a.sessions.User(); current != nil && current.ID == userID {
		fmt.Println("cannot change your own status")
		return
	}
	if err := a.client.ToggleUserStatus(ctx, token, userID); err != nil {
		fmt.Printf("toggle failed: %s\n", err)
		return
	}
	fmt.Println("user status updated")
}

func checkoutCart(ctx context.Context, a *app) {
	token := a.sessions.Token()
	if token == "" || !a.sessions.IsAuthenticated() {
		fmt.Println("login first")
		return
	}
	if a.carts.ItemCount() == 0 {
		fmt.Println("cart is empty")
		return
	}
	checkoutSession, err := a.client.CreateCartCheckoutSession(ctx, token)
	if err != nil {
		fmt.Printf("checkout failed: %s\n", err)
		return
	}
	fmt.Printf("complete your payment at:\n  %s\n", checkoutSession.SessionURL)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
