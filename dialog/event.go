package dialog

// Event — входящее событие от транспорта: либо текст, либо нажатие
// inline-кнопки, либо присланный файл. Транспортные детали (chat id,
// message id, скачивание файла) остаются на стороне вебхука.
type Event struct {
	Text     string
	Callback string
	Document *Document
}

// Document — присланный файл, уже выкачанный в память
type Document struct {
	Name string
	Data []byte
}

// IsCallback — событие пришло от inline-кнопки
func (e Event) IsCallback() bool {
	return e.Callback != ""
}

// Reply — ответ движка: одно или несколько сообщений и, для колбэков,
// короткое уведомление (answerCallbackQuery)
type Reply struct {
	Messages []Message
	Notice   *Notice
}

// Message — одно исходящее сообщение
type Message struct {
	Text     string
	Keyboard [][]string // обычная клавиатура
	Inline   [][]Button // inline-кнопки
	File     *File      // вложение-документ
	Edit     bool       // редактировать сообщение с кнопками вместо отправки нового
}

// Button — inline-кнопка
type Button struct {
	Label string
	Data  string
}

// File — документ для отправки оператору
type File struct {
	Name string
	Data []byte
}

// Notice — ответ на нажатие кнопки (всплывашка или тихое уведомление)
type Notice struct {
	Text  string
	Alert bool
}

func textMsg(text string) Reply {
	return Reply{Messages: []Message{{Text: text}}}
}

func keyboardMsg(text string, keyboard [][]string) Reply {
	return Reply{Messages: []Message{{Text: text, Keyboard: keyboard}}}
}

func inlineMsg(text string, rows [][]Button) Reply {
	return Reply{Messages: []Message{{Text: text, Inline: rows}}}
}

func editMsg(text string) Message {
	return Message{Text: text, Edit: true}
}

func (r Reply) withNotice(text string, alert bool) Reply {
	r.Notice = &Notice{Text: text, Alert: alert}
	return r
}

func (r Reply) append(msgs ...Message) Reply {
	r.Messages = append(r.Messages, msgs...)
	return r
}
