package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/shashiranjanraj/chefmenu/app/catalog"
	"github.com/shashiranjanraj/chefmenu/app/models"
	"github.com/shashiranjanraj/chefmenu/app/views"
)

// callbackPrefix marks inline-keyboard course filters: "course:mains".
const callbackPrefix = "course:"

// Reply is one outgoing chat message.
type Reply struct {
	Text     string
	Keyboard *tgbotapi.InlineKeyboardMarkup
}

// Answer builds the reply to a chat message. Unknown input gets a hint.
func Answer(menu *catalog.Catalog, chef, text string) Reply {
	cmd, arg := parseCommand(text)
	switch cmd {
	case "/start", "/help":
		return Reply{Text: welcome(chef), Keyboard: CourseKeyboard()}
	case "/menu":
		return menuReply(menu, arg)
	case "/courses":
		return Reply{Text: courseList(menu), Keyboard: CourseKeyboard()}
	case "/stats":
		return Reply{Text: statsText(menu)}
	}
	return Reply{Text: "Sorry, I don't know that one. Try /menu or /courses."}
}

// AnswerCallback builds the reply to an inline-keyboard press. ok is false
// for data this bot never sent.
func AnswerCallback(menu *catalog.Catalog, data string) (Reply, bool) {
	filter, ok := strings.CutPrefix(data, callbackPrefix)
	if !ok {
		return Reply{}, false
	}
	return menuReply(menu, filter), true
}

// CourseKeyboard offers "All Items" and then one button per course.
func CourseKeyboard() *tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(views.AllItemsLabel, callbackPrefix+catalog.FilterAll),
		),
	}
	var row []tgbotapi.InlineKeyboardButton
	for _, c := range models.Courses() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(c.Label(), callbackPrefix+string(c.ID)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

func menuReply(menu *catalog.Catalog, filter string) Reply {
	return Reply{
		Text:     views.Card(catalog.GuestView(menu, filter)),
		Keyboard: CourseKeyboard(),
	}
}

// parseCommand splits "/menu@chef_bot mains" into ("/menu", "mains").
func parseCommand(text string) (cmd, arg string) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", ""
	}
	cmd, _, _ = strings.Cut(strings.ToLower(fields[0]), "@")
	if len(fields) > 1 {
		arg = strings.ToLower(fields[1])
	}
	return cmd, arg
}

func welcome(chef string) string {
	return fmt.Sprintf("Welcome to %s's kitchen!\n%s\n\n"+
		"/menu - browse the menu\n"+
		"/menu <course> - one course only\n"+
		"/courses - list courses\n"+
		"/stats - menu statistics",
		chef, views.Subtitle)
}

func courseList(menu *catalog.Catalog) string {
	var b strings.Builder
	b.WriteString("Courses\n")
	for _, c := range models.Courses() {
		fmt.Fprintf(&b, "\n%s (%d)", c.Label(), len(menu.ItemsByCourse(c.ID)))
	}
	return b.String()
}

func statsText(menu *catalog.Catalog) string {
	s := menu.Stats()
	var b strings.Builder
	fmt.Fprintf(&b, "Total items: %d\nAverage price: R%s\n", s.Total, s.Average)
	for _, cs := range s.Courses {
		fmt.Fprintf(&b, "\n%s: %d, avg R%s", cs.Course.Label(), cs.Count, cs.Average)
	}
	return b.String()
}
