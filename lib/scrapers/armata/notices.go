package armata

// The site reports soft errors with a localized notice element instead of
// a status code. Notices are compared against their exact serialized html
// (void elements rendered as <br/>).

type pageKind int

const (
	pageValid pageKind = iota
	pageNotAuthenticated
	pagePlayerNotFound
	pageStatisticsClosed
	pageBattalionNotFound
)

// checked in order, the first match wins
var playerNotices = []struct {
	html string
	kind pageKind
}{
	{
		html: `<p>Для просмотра данной страницы вам необходимо авторизоваться или <a href="/user/register/">зарегистрироваться</a> на сайте.</p>`,
		kind: pageNotAuthenticated,
	},
	{
		html: `<p>Для просмотра данной страницы вам необходимо авторизоваться или <a href="" onclick="__GEM.showSignup();return false;" target="_blank">зарегистрироваться</a> на сайте.</p>`,
		kind: pageNotAuthenticated,
	},
	{
		html: `<div class="node_notice warn border">Пользователь не найден!</div>`,
		kind: pagePlayerNotFound,
	},
	{
		html: `<div class="node_notice warn border">Пользователь закрыл доступ!</div>`,
		kind: pageStatisticsClosed,
	},
}

// the battalion page has this as its second notice
const battalionNotAuthenticatedNotice = `<div class="node_notice warn border">Необходимо авторизоваться.</div>`

// returned verbatim instead of html when a battalion id does not exist
const battalionNotFoundPayload = `{"redirect":"\/alliance\/top"}`
