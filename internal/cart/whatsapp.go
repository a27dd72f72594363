package cart

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// WhatsappNumber receives storefront orders. It is not the general contact number.
const WhatsappNumber = "966570135200"

const whatsappBaseURL = "https://wa.me/"

const (
	LocaleArabic  = "ar"
	LocaleEnglish = "en"
)

type messageStrings struct {
	header string
	total  string
	link   string
}

var messages = map[string]messageStrings{
	LocaleArabic: {
		header: "أرغب في طلب المنتجات التالية:",
		total:  "الإجمالي:",
		link:   "الرابط:",
	},
	LocaleEnglish: {
		header: "I would like to order the following products:",
		total:  "Total:",
		link:   "Link:",
	},
}

// MessageOptions overrides the store's locale and origin for one link.
type MessageOptions struct {
	Locale string
	Origin string
}

// NormalizeLocale reduces a BCP 47 tag to a supported message locale, defaulting to Arabic.
func NormalizeLocale(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return DefaultLocale
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return DefaultLocale
	}
	base, _ := parsed.Base()
	if _, ok := messages[base.String()]; ok {
		return base.String()
	}
	return DefaultLocale
}

// BuildWhatsappLink renders the order message with the store's locale and origin.
func (s *Store) BuildWhatsappLink() string {
	return s.BuildWhatsappLinkWith(MessageOptions{
		Locale: s.locale,
		Origin: s.resolveOrigin(),
	})
}

// BuildWhatsappLinkWith renders the order message with per-call options.
func (s *Store) BuildWhatsappLinkWith(opts MessageOptions) string {
	items := s.Items()
	s.metrics.IncCheckout()
	return WhatsappLink(BuildMessage(items, s.currency, opts))
}

// BuildMessage lays out the order text: header, one line per item, total, origin.
func BuildMessage(items []LineItem, currency string, opts MessageOptions) string {
	text := messages[NormalizeLocale(opts.Locale)]

	lines := make([]string, 0, len(items)+3)
	lines = append(lines, text.header)
	for _, item := range items {
		line := "- " + item.Name + " x" + strconv.Itoa(item.Quantity)
		if amount, ok := item.LineTotal(); ok {
			line += " = " + amount.String() + " " + currency
		}
		lines = append(lines, line)
	}
	lines = append(lines, text.total+" "+Total(items).String()+" "+currency)
	lines = append(lines, text.link+" "+opts.Origin)
	return strings.Join(lines, "\n")
}

// WhatsappLink embeds message in the wa.me deep link for WhatsappNumber.
func WhatsappLink(message string) string {
	return whatsappBaseURL + WhatsappNumber + "?text=" + encodeURIComponent(message)
}

// QueryEscape differs from the browser's encodeURIComponent in the characters below.
var uriComponentFixups = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeURIComponent(s string) string {
	return uriComponentFixups.Replace(url.QueryEscape(s))
}

func (s *Store) resolveOrigin() (origin string) {
	if s.origin == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			origin = ""
		}
	}()
	return s.origin()
}
