package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Sachintlgt/brd-admin-sub000/internal/api"
	"github.com/Sachintlgt/brd-admin-sub000/internal/config"
	"github.com/Sachintlgt/brd-admin-sub000/internal/dtos"
	"github.com/Sachintlgt/brd-admin-sub000/internal/files"
	"github.com/Sachintlgt/brd-admin-sub000/internal/form"
	"github.com/Sachintlgt/brd-admin-sub000/internal/format"
	"github.com/Sachintlgt/brd-admin-sub000/internal/listview"
	"github.com/Sachintlgt/brd-admin-sub000/internal/session"
	"github.com/Sachintlgt/brd-admin-sub000/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	store, client := buildSession(cfg)

	ctx := context.Background()
	cmd, args := os.Args[1], os.Args[2:]

	var err error
	switch cmd {
	case "login":
		err = cmdLogin(ctx, store, args)
	case "logout":
		store.Logout(ctx)
		fmt.Println("Logged out")
	case "me":
		err = cmdMe(ctx, client)
	case "list":
		err = cmdList(client, args)
	case "get":
		err = cmdGet(ctx, client, args)
	case "create":
		err = cmdSubmit(ctx, client, args, "")
	case "update":
		err = cmdUpdate(ctx, client, args)
	case "delete":
		err = cmdDelete(ctx, client, args)
	case "toggle-active":
		err = cmdToggle(ctx, client, args, "active")
	case "toggle-featured":
		err = cmdToggle(ctx, client, args, "featured")
	case "forgot-password":
		err = cmdForgotPassword(ctx, client, args)
	case "reset-password":
		err = cmdResetPassword(ctx, client, args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		utils.Logger.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: brdadmin <command> [flags]

commands:
  login -email ... -password ... [-role ...]
  logout
  me
  list [-search ...] [-active true|false] [-featured true|false]
       [-sort field] [-order asc|desc] [-min-price n] [-max-price n]
       [-staff id] [-page n] [-limit n]
  get -id ...
  create -manifest draft.json [-files dir]
  update -id ... -manifest draft.json [-files dir]
  delete -id ...
  toggle-active -id ... -value true|false
  toggle-featured -id ... -value true|false
  forgot-password -email ...
  reset-password -token ... -password ...`)
}

// logNotifier routes form/session notifications to the terminal.
type logNotifier struct{}

func (logNotifier) Success(msg string) { utils.Logger.Info(msg) }
func (logNotifier) Error(msg string)   { utils.Logger.Error(msg) }

func buildSession(cfg *config.Config) (*session.Store, *api.Client) {
	var store *session.Store
	client, err := api.NewClient(cfg.APIBaseURL, func() string { return store.Token() }, cfg.MaxRetries, cfg.RetryInitial)
	if err != nil {
		utils.Logger.Fatal(err)
	}
	store = session.NewStore(client, session.Options{
		Notifier: logNotifier{},
		Navigate: func(route string) { utils.Logger.Debugf("navigate -> %s", route) },
		Persist:  session.NewStateFile(cfg.StateFilePath),
	})
	store.Bootstrap(cfg.IdentityCookie)
	return store, client
}

func cmdLogin(ctx context.Context, store *session.Store, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", "", "optional role (ADMIN or STAFF)")
	fs.Parse(args)

	if err := store.Login(ctx, dtos.LoginRequest{Email: *email, Password: *password, Role: *role}); err != nil {
		return err
	}
	user, _ := store.User()
	fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Email)
	return nil
}

func cmdMe(ctx context.Context, client *api.Client) error {
	user, err := client.Me(ctx)
	if err != nil {
		return err
	}
	return printJSON(user)
}

func cmdList(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	search := fs.String("search", "", "free-text search")
	active := fs.String("active", "", "filter by active flag")
	featured := fs.String("featured", "", "filter by featured flag")
	sortBy := fs.String("sort", "", "sort field")
	order := fs.String("order", "", "asc or desc")
	minPrice := fs.Float64("min-price", 0, "minimum share price")
	maxPrice := fs.Float64("max-price", 0, "maximum share price")
	staff := fs.String("staff", "", "staff id")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "page size")
	fs.Parse(args)

	filters := listview.Filters{
		Search:    *search,
		SortBy:    *sortBy,
		SortOrder: *order,
		StaffID:   *staff,
	}
	if *active != "" {
		v := *active == "true"
		filters.IsActive = &v
	}
	if *featured != "" {
		v := *featured == "true"
		filters.IsFeatured = &v
	}
	if *minPrice > 0 {
		filters.MinPrice = minPrice
	}
	if *maxPrice > 0 {
		filters.MaxPrice = maxPrice
	}

	var listErr error
	done := make(chan struct{})
	state := listview.NewState(client, listview.Options{
		OnPage: func(p *dtos.PropertyPage) {
			printPage(p)
			close(done)
		},
		OnError: func(err error) {
			listErr = err
			close(done)
		},
	})
	state.Init(filters, *page, *limit)
	<-done
	return listErr
}

func printPage(p *dtos.PropertyPage) {
	for _, prop := range p.Properties {
		status := "inactive"
		if prop.IsActive {
			status = "active"
		}
		star := " "
		if prop.IsFeatured {
			star = "*"
		}
		fmt.Printf("%s %-24s %-20s %-10s %s  shares %d/%d\n",
			star, prop.ID, truncate(prop.Name, 20), status,
			format.FormatCurrency("", "INR", prop.InitialPricePerShare),
			prop.AvailableShares, prop.TotalShares)
	}
	fmt.Printf("page %d of %d (%d records)  %s\n",
		p.Pagination.Page, p.Pagination.TotalPages, p.Pagination.Total,
		strings.Join(listview.PageStrip(p.Pagination.Page, p.Pagination.TotalPages), " "))
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func cmdGet(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	id := fs.String("id", "", "property id")
	fs.Parse(args)

	prop, err := client.GetProperty(ctx, *id)
	if err != nil {
		return err
	}
	return printJSON(prop)
}

func cmdUpdate(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.String("id", "", "property id")
	manifestPath := fs.String("manifest", "", "draft manifest JSON")
	filesDir := fs.String("files", "", "directory of files to attach")
	fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("update requires -id")
	}
	return submit(ctx, client, *id, *manifestPath, *filesDir)
}

func cmdSubmit(ctx context.Context, client *api.Client, args []string, id string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	manifestPath := fs.String("manifest", "", "draft manifest JSON")
	filesDir := fs.String("files", "", "directory of files to attach")
	fs.Parse(args)
	return submit(ctx, client, id, *manifestPath, *filesDir)
}

// manifest is the CLI's on-disk draft shape.
type manifest struct {
	api.Scalars

	Amenities            []string                   `json:"amenities"`
	PricingDetails       []dtos.PricingDetail       `json:"pricingDetails"`
	ShareDetails         []dtos.ShareDetail         `json:"shareDetails"`
	MaintenanceTemplates []dtos.MaintenanceTemplate `json:"maintenanceTemplates"`
	PaymentPlans         []dtos.PaymentPlan         `json:"paymentPlans"`
	Highlights           []dtos.Highlight           `json:"highlights"`

	// Remove maps a family name to existing-item ids to delete (update only).
	Remove map[string][]string `json:"remove"`
}

func submit(ctx context.Context, client *api.Client, id, manifestPath, filesDir string) error {
	if manifestPath == "" {
		return fmt.Errorf("a -manifest file is required")
	}
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return err
	}
	var m manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	opts := form.Options{Notifier: logNotifier{}}

	var f *form.Form
	if id != "" {
		prop, err := client.GetProperty(ctx, id)
		if err != nil {
			return err
		}
		f = form.NewEditForm(client, prop, opts)
	} else {
		f = form.NewCreateForm(client, opts)
	}

	applyManifest(f, m)
	if filesDir != "" {
		if err := attachFiles(f, filesDir); err != nil {
			return err
		}
	}

	prop, err := f.Submit(ctx)
	if err != nil {
		for field, msgs := range f.FieldErrors() {
			for _, msg := range msgs {
				utils.WithOp("submit").WithField("field", field).Error(msg)
			}
		}
		return err
	}
	fmt.Printf("Saved property %s\n", prop.ID)
	return nil
}

func applyManifest(f *form.Form, m manifest) {
	f.Scalars = mergeScalars(f.Scalars, m.Scalars)

	for _, name := range m.Amenities {
		if _, err := f.Amenities.AddName(name); err != nil {
			utils.WithOp("manifest").WithError(err).Warn("Skipping amenity")
		}
	}
	for _, r := range m.PricingDetails {
		f.Pricing.Add(r)
	}
	for _, r := range m.ShareDetails {
		f.Shares.Add(r)
	}
	for _, r := range m.MaintenanceTemplates {
		f.Maintenance.Add(r)
	}
	for _, r := range m.PaymentPlans {
		f.Plans.Add(r)
	}
	for _, r := range m.Highlights {
		f.Highlights.Add(r)
	}

	lists := map[string]*form.ItemList{
		"amenities":    f.Amenities,
		"certificates": f.Certificates,
		"floorPlans":   f.FloorPlans,
		"documents":    f.Documents,
		"images":       f.Images,
		"videos":       f.Videos,
	}
	for family, ids := range m.Remove {
		list, ok := lists[family]
		if !ok {
			utils.WithOp("manifest").Warnf("Unknown remove family %q", family)
			continue
		}
		for _, removeID := range ids {
			removed := false
			for _, it := range list.Items() {
				if it.ID == removeID {
					removed = list.Remove(it.Key)
					break
				}
			}
			if !removed {
				utils.WithOp("manifest").Warnf("No %s item with id %q to remove", family, removeID)
			}
		}
	}
}

// mergeScalars overlays manifest values onto the fetched draft: set fields
// win, unset fields keep what the server returned.
func mergeScalars(base, over api.Scalars) api.Scalars {
	if over.Name != "" {
		base.Name = over.Name
	}
	if over.Location != "" {
		base.Location = over.Location
	}
	if over.FormattedAddress != "" {
		base.FormattedAddress = over.FormattedAddress
	}
	if over.PlaceID != "" {
		base.PlaceID = over.PlaceID
	}
	if over.Latitude != nil {
		base.Latitude = over.Latitude
	}
	if over.Longitude != nil {
		base.Longitude = over.Longitude
	}
	if over.Zoom != nil {
		base.Zoom = over.Zoom
	}
	if over.Description != "" {
		base.Description = over.Description
	}
	if over.Beds != nil {
		base.Beds = over.Beds
	}
	if over.Bathrooms != nil {
		base.Bathrooms = over.Bathrooms
	}
	if over.Sqft != nil {
		base.Sqft = over.Sqft
	}
	if over.MaxOccupancy != nil {
		base.MaxOccupancy = over.MaxOccupancy
	}
	if over.TotalShares != nil {
		base.TotalShares = over.TotalShares
	}
	if over.AvailableShares != nil {
		base.AvailableShares = over.AvailableShares
	}
	if over.InitialPricePerShare != nil {
		base.InitialPricePerShare = over.InitialPricePerShare
	}
	if over.CurrentPricePerShare != nil {
		base.CurrentPricePerShare = over.CurrentPricePerShare
	}
	if over.WholeUnitPrice != nil {
		base.WholeUnitPrice = over.WholeUnitPrice
	}
	if over.TargetIRR != nil {
		base.TargetIRR = over.TargetIRR
	}
	if over.TargetRentalYield != nil {
		base.TargetRentalYield = over.TargetRentalYield
	}
	if over.AppreciationRate != nil {
		base.AppreciationRate = over.AppreciationRate
	}
	if over.PossessionDate != "" {
		base.PossessionDate = over.PossessionDate
	}
	if over.LaunchDate != "" {
		base.LaunchDate = over.LaunchDate
	}
	if over.MaxBookingDays != nil {
		base.MaxBookingDays = over.MaxBookingDays
	}
	if over.BookingAmount != nil {
		base.BookingAmount = over.BookingAmount
	}
	if over.BookingAmountGST != nil {
		base.BookingAmountGST = over.BookingAmountGST
	}
	if over.IsActive != nil {
		base.IsActive = over.IsActive
	}
	if over.IsFeatured != nil {
		base.IsFeatured = over.IsFeatured
	}
	return base
}

// attachFiles maps files-dir subdirectories onto entity families.
func attachFiles(f *form.Form, dir string) error {
	families := map[string]*form.ItemList{
		"images":        f.Images,
		"videos":        f.Videos,
		"documents":     f.Documents,
		"certificates":  f.Certificates,
		"floorplans":    f.FloorPlans,
		"amenity-icons": f.Amenities,
	}
	for sub, list := range families {
		subdir := filepath.Join(dir, sub)
		entries, err := os.ReadDir(subdir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(subdir, entry.Name())
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
			list.AddFile(name, files.Upload{
				Name:        entry.Name(),
				ContentType: mimetype.Detect(content).String(),
				Content:     content,
			})
		}
	}
	return nil
}

func cmdDelete(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "property id")
	fs.Parse(args)
	if err := client.DeleteProperty(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("Deleted property %s\n", *id)
	return nil
}

func cmdToggle(ctx context.Context, client *api.Client, args []string, which string) error {
	fs := flag.NewFlagSet("toggle", flag.ExitOnError)
	id := fs.String("id", "", "property id")
	value := fs.Bool("value", true, "new flag value")
	fs.Parse(args)

	var err error
	if which == "active" {
		_, err = client.ToggleActive(ctx, *id, *value)
	} else {
		_, err = client.ToggleFeatured(ctx, *id, *value)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Toggled %s on %s to %t\n", which, *id, *value)
	return nil
}

func cmdForgotPassword(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("forgot-password", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	fs.Parse(args)

	msg, err := client.ForgotPassword(ctx, dtos.ForgotPasswordRequest{Email: *email})
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func cmdResetPassword(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("reset-password", flag.ExitOnError)
	token := fs.String("token", "", "reset token")
	password := fs.String("password", "", "new password")
	fs.Parse(args)

	msg, err := client.ResetPassword(ctx, dtos.ResetPasswordRequest{Token: *token, NewPassword: *password})
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}
