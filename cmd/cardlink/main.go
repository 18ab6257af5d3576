package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cardlink/cardlink-services/internal/apisvc/models"
	"github.com/cardlink/cardlink-services/internal/client"
	"github.com/cardlink/cardlink-services/internal/crop"
	"github.com/cardlink/cardlink-services/internal/ocr"
)

const usage = `cardlink - business card contacts from the terminal

Usage:
  cardlink <command> [flags]

Commands:
  signup      create an account and store the session token
  login       sign in and store the session token
  logout      forget the stored session token
  me          show or update the profile
  list        list contacts with filters and sorting
  add         save a new contact (runs the duplicate check)
  favorite    toggle the favorite star on a contact
  delete      remove a contact
  call        print the dial URL for a contact
  export      write a contact as a vCard
  scan        crop, upload and OCR a card image
  fill        interactively assign OCR tokens to fields
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	api := client.New(os.Getenv("CARDLINK_API"))
	vault, err := client.OpenVault("")
	if err != nil {
		fatal(err)
	}

	ctx := context.Background()
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "signup":
		err = runSignup(ctx, api, vault, args)
	case "login":
		err = runLogin(ctx, api, vault, args)
	case "logout":
		err = vault.DeleteToken()
	case "me":
		err = runMe(ctx, api, vault, args)
	case "list":
		err = runList(ctx, api, vault, args)
	case "add":
		err = runAdd(ctx, api, vault, args)
	case "favorite":
		err = runFavorite(ctx, api, vault, args)
	case "delete":
		err = runDelete(ctx, api, vault, args)
	case "call":
		err = runCall(ctx, api, vault, args)
	case "export":
		err = runExport(ctx, api, vault, args)
	case "scan":
		err = runScan(ctx, api, vault, args)
	case "fill":
		err = runFill(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "cardlink:", err)
	os.Exit(1)
}

func token(vault *client.Vault) (string, error) {
	t, err := vault.Token()
	if errors.Is(err, client.ErrNoToken) {
		return "", errors.New("not logged in, run `cardlink login` first")
	}
	return t, err
}

func runSignup(ctx context.Context, api *client.API, vault *client.Vault, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	t, err := api.Signup(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := vault.SaveToken(t); err != nil {
		return err
	}
	fmt.Println("account created, you are logged in")
	return nil
}

func runLogin(ctx context.Context, api *client.API, vault *client.Vault, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	t, err := api.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := vault.SaveToken(t); err != nil {
		return err
	}
	fmt.Println("logged in")
	return nil
}

func runMe(ctx context.Context, api *client.API, vault *client.Vault, args []string) error {
	fs := flag.NewFlagSet("me", flag.ExitOnError)
	name := fs.String("name", "", "set display name")
	avatar := fs.String("avatar", "", "set avatar URL")
	fs.Parse(args)

	t, err := token(vault)
	if err != nil {
		return err
	}

	if *name != "" || *avatar != "" {
		profile, err := api.UpdateMe(ctx, t, *name, *avatar)
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s>\n", profile.Name, profile.Email)
		return nil
	}

	profile, err := api.Me(ctx, t)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\n", profile.Name, profile.Email)
	return nil
}

func runList(ctx context.Context, api *client.API, vault *client.Vault, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	query := fs.String("q", "", "search name, company, phone or email")
	fav := fs.Bool("fav", false, "favorites only")
	hasPhone := fs.Bool("has-phone", false, "contacts with a phone number")
	hasEmail := fs.Bool("has-email", false, "contacts with an email")
	company := fs.String("company", "", "exact company filter")
	sortMode := fs.String("sort", "newest", "sort: newest, az or company")
	fs.Parse(args)

	t, err := token(vault)
	if err != nil {
		return err
	}

	contacts, err := api.ListContacts(ctx, t)
	if err != nil {
		return err
	}

	f := client.Filter{
		Query:         *query,
		FavoritesOnly: *fav,
		HasPhone:      *hasPhone,
		HasEmail:      *hasEmail,
		Company:       *company,
		Sort:          client.SortMode(*sortMode),
	}
	for _, c := range f.Apply(contacts) {
		printContact(c)
	}
	return nil
}

func printContact(c models.Contact) {
	star := " "
	if c.IsFavorite {
		star = "*"
	}
	line := fmt.Sprintf("%s %-36s %-24s", star, c.ID, c.FullName())
	if c.Company != "" {
		line += "  " + c.Company
	}
	if c.Phone != "" {
		line += "  " + c.Phone
	}
	fmt.Println(line)
}

func runAdd(ctx context.Context, api *client.API, vault *client.Vault, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	c := models.Contact{}
	fs.StringVar(&c.FirstName, "first", "", "first name")
	fs.StringVar(&c.LastName, "last", "", "last name")
	fs.StringVar(&c.Nickname, "nickname", "", "nickname")
	fs.StringVar(&c.Position, "position", "", "job title")
	fs.StringVar(&c.Phone, "phone", "", "primary phone")
	fs.StringVar(&c.Email, "email", "", "email address")
	fs.StringVar(&c.Company, "company", "", "company")
	fs.StringVar(&c.Website, "website", "", "website")
	fs.StringVar(&c.Notes, "notes", "", "notes")
	fs.StringVar(&c.CardImage, "image", "", "card image URL")
	extra := fs.String("extra-phones", "", "comma separated additional phones")
	fs.Parse(args)

	if *extra != "" {
		for _, n := range strings.Split(*extra, ",") {
			if n = strings.TrimSpace(n); n != "" {
				c.AdditionalPhones = append(c.AdditionalPhones, n)
			}
		}
	}

	t, err := token(vault)
	if err != nil {
		return err
	}

	saved, err := client.SaveContact(ctx, api, t, c, promptDuplicate)
	if err != nil {
		return err
	}
	if saved == nil {
		fmt.Println("cancelled")
		return nil
	}
	fmt.Println("saved", saved.ID)
	return nil
}

// promptDuplicate asks what to do when the new contact matches an
// existing one by phone or email.
func promptDuplicate(dup models.Contact) client.Resolution {
	fmt.Printf("a contact with the same phone or email exists: %s", dup.FullName())
	if dup.Company != "" {
		fmt.Printf(" (%s)", dup.Company)
	}
	fmt.Println()
	fmt.Print("[k]eep both, [r]eplace, anything else cancels: ")

	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "k":
		return client.ResolutionKeepBoth
	case "r":
		return client.ResolutionReplace
	default:
		return client.ResolutionCancel
	}
}

func runFavorite(ctx context.Context, api *client.API, vault *client.Vault, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: cardlink favorite <contact-id>")
	}

	t, err := token(vault)
	if err != nil {
		return err
	}

	contacts, err := api.ListContacts(ctx, t)
	if err != nil {
		return err
	}

	contacts, err = client.ToggleFavorite(ctx, api, t, contacts, args[0])
	if err != nil {
		return err
	}
	for _, c := range contacts {
		if c.ID == args[0] {
			printContact(c)
		}
	}
	return nil
}

func runDelete(ctx context.Context, api *client.API, vault *client.Vault, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: cardlink delete <contact-id>")
	}

	t, err := token(vault)
	if err != nil {
		return err
	}

	if err := api.DeleteContact(ctx, t, args[0]); err != nil {
		return err
	}
	fmt.Println("deleted", args[0])
	return nil
}

func runCall(ctx context.Context, api *client.API, vault *client.Vault, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: cardlink call <contact-id>")
	}

	t, err := token(vault)
	if err != nil {
		return err
	}

	c, err := api.GetContact(ctx, t, args[0])
	if err != nil {
		return err
	}

	url, err := client.DialURL(c.Phone)
	if err != nil {
		return err
	}
	fmt.Println(url)
	return nil
}

func runExport(ctx context.Context, api *client.API, vault *client.Vault, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("o", "", "output file, default <name>.vcf")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("usage: cardlink export [-o file] <contact-id>")
	}

	t, err := token(vault)
	if err != nil {
		return err
	}

	c, err := api.GetContact(ctx, t, fs.Arg(0))
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		name := strings.ReplaceAll(c.FullName(), " ", "_")
		if name == "" {
			name = c.ID
		}
		path = name + ".vcf"
	}

	if err := os.WriteFile(path, []byte(client.VCard(*c)), 0644); err != nil {
		return err
	}
	fmt.Println("wrote", path)
	return nil
}

func runScan(ctx context.Context, api *client.API, vault *client.Vault, args []string) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	imagePath := fs.String("image", "", "card photo to scan")
	scale := fs.Float64("scale", 1, "pinch zoom factor")
	tx := fs.Float64("tx", 0, "pan offset x in display points")
	ty := fs.Float64("ty", 0, "pan offset y in display points")
	frameW := fs.Float64("frame-w", 0, "preview frame width, defaults to image width")
	frameH := fs.Float64("frame-h", 0, "preview frame height, defaults to image height")
	viewport := fs.String("viewport", "", "crop window as x,y,w,h in frame coordinates")
	fs.Parse(args)

	if *imagePath == "" {
		return errors.New("usage: cardlink scan -image <file> [crop flags]")
	}

	t, err := token(vault)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(*imagePath)
	if err != nil {
		return err
	}
	img, err := crop.Decode(data)
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	fw, fh := *frameW, *frameH
	if fw <= 0 {
		fw = float64(bounds.Dx())
	}
	if fh <= 0 {
		fh = float64(bounds.Dy())
	}

	pv := crop.Viewport{X: 0, Y: 0, W: fw, H: fh}
	if *viewport != "" {
		pv, err = parseViewport(*viewport)
		if err != nil {
			return err
		}
	}

	region := crop.Map(bounds.Dx(), bounds.Dy(), pv,
		crop.Gesture{Scale: *scale, TranslateX: *tx, TranslateY: *ty}, fw, fh)
	jpeg, err := crop.EncodeJPEG(crop.Apply(img, region))
	if err != nil {
		return err
	}

	uploader := client.NewUploader(os.Getenv("CLOUDINARY_CLOUD"), os.Getenv("CLOUDINARY_PRESET"))
	imageURL, err := uploader.Upload(ctx, jpeg)
	if err != nil {
		return err
	}
	fmt.Println("uploaded:", imageURL)

	res, err := api.RunOCR(ctx, t, imageURL)
	if err != nil {
		return err
	}

	printParsed(res.Parsed)
	fmt.Println()
	fmt.Println("raw text:")
	fmt.Println(res.RawText)
	return nil
}

func parseViewport(s string) (crop.Viewport, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return crop.Viewport{}, errors.New("viewport must be x,y,w,h")
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return crop.Viewport{}, fmt.Errorf("bad viewport value %q", p)
		}
		vals[i] = v
	}
	return crop.Viewport{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, nil
}

func printParsed(p ocr.Parsed) {
	printField := func(label, v string) {
		if v != "" {
			fmt.Printf("%-12s %s\n", label+":", v)
		}
	}
	printField("first name", p.FirstName.Value)
	printField("last name", p.LastName.Value)
	printField("nickname", p.Nickname.Value)
	printField("position", p.Position.Value)
	printField("phone", p.Phone.Value)
	for _, n := range p.AdditionalPhones {
		printField("phone", n.Value)
	}
	printField("email", p.Email.Value)
	printField("company", p.Company.Value)
	printField("website", p.Website.Value)
	printField("notes", p.Notes.Value)
}

// runFill drives the tap-to-fill flow: tokens from the OCR text are
// listed with indexes and assigned to whichever field is selected.
func runFill(args []string) error {
	fs := flag.NewFlagSet("fill", flag.ExitOnError)
	textPath := fs.String("text", "", "file holding raw OCR text, - for stdin")
	fs.Parse(args)

	var raw []byte
	var err error
	switch *textPath {
	case "":
		return errors.New("usage: cardlink fill -text <file|->")
	case "-":
		raw, err = readAll(os.Stdin)
	default:
		raw, err = os.ReadFile(*textPath)
	}
	if err != nil {
		return err
	}

	session := ocr.NewFillSession(string(raw),
		"firstName", "lastName", "nickname", "position",
		"phone", "email", "company", "website", "notes")

	fmt.Println("tokens:")
	for i, tok := range session.Tokens {
		fmt.Printf("  %2d  %s\n", i, tok)
	}
	fmt.Println()
	fmt.Println("commands: select <field>, tap <n>, clear <field>, show, done")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "select":
			if len(parts) != 2 {
				fmt.Println("usage: select <field>")
				continue
			}
			if err := session.Select(parts[1]); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println("filling", parts[1])
		case "tap":
			if len(parts) != 2 {
				fmt.Println("usage: tap <token-index>")
				continue
			}
			i, err := strconv.Atoi(parts[1])
			if err != nil || i < 0 || i >= len(session.Tokens) {
				fmt.Println("no such token")
				continue
			}
			if session.Active() == "" {
				fmt.Println("select a field first")
				continue
			}
			session.Tap(session.Tokens[i])
			fmt.Printf("%s = %q\n", session.Active(), session.Value(session.Active()))
		case "clear":
			if len(parts) != 2 {
				fmt.Println("usage: clear <field>")
				continue
			}
			session.Clear(parts[1])
		case "show":
			for _, f := range session.Fields() {
				if v := session.Value(f); v != "" {
					fmt.Printf("%-12s %s\n", f+":", v)
				}
			}
		case "done":
			for _, f := range session.Fields() {
				if v := session.Value(f); v != "" {
					fmt.Printf("%-12s %s\n", f+":", v)
				}
			}
			return nil
		default:
			fmt.Println("commands: select <field>, tap <n>, clear <field>, show, done")
		}
	}
	return scanner.Err()
}

func readAll(f *os.File) ([]byte, error) {
	var sb strings.Builder
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		sb.WriteString(sc.Text())
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), sc.Err()
}
