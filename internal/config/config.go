package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Contactbook/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Contactbook"
	AppID             = "com.github.tartampluch.go-contactbook"
	CLIName           = "go-contactbook"
	KeyringService    = "com.github.tartampluch.go-contactbook"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	DataFileName      = "contacts.vcf"
	EnvFileName       = ".env"
	EnvPrefix         = "CONTACTBOOK_"
	TempFilePattern   = ".contacts-*.vcf"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and the address book file.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Commands, Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	CLIUsage = "Personal contact book with phone validation and birthday reminders"

	CmdRepl     = "repl"
	CmdServe    = "serve"
	CmdCalendar = "calendar"
	CmdExport   = "export"
	CmdLogin    = "login"

	CmdDescRepl     = "Start the interactive contact assistant (default)"
	CmdDescServe    = "Run the assistant and publish the birthday calendar over HTTP"
	CmdDescCalendar = "Print the birthday calendar (iCalendar) and exit"
	CmdDescExport   = "Print the address book as vCard and exit"
	CmdDescLogin    = "Store the remote address book password in the system keyring"

	FlagDebug  = "debug"
	FlagFile   = "file"
	FlagOutput = "output"
	FlagUser   = "user"

	FlagDescDebug  = "Enable debug logging"
	FlagDescFile   = "Path of the vCard file holding the address book"
	FlagDescOutput = "Write to this file instead of stdout"
	FlagDescUser   = "Remote address book user name"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
	MsgPasswordAsk   = "Password for %s: "
)

// -----------------------------------------------------------------------------
// Phone Numbers
// -----------------------------------------------------------------------------

const (
	// DefaultCountryCode completes 10-digit local numbers (Ukraine).
	DefaultCountryCode = "38"

	PhonePrefix              = "+"
	PhoneDigitsLocal         = 10
	PhoneDigitsInternational = 12
	CountryCodeDigits        = PhoneDigitsInternational - PhoneDigitsLocal

	// PhoneMaskVisible is the number of trailing digits left readable in logs.
	PhoneMaskVisible = 4
	PhoneMaskRune    = '*'
)

// -----------------------------------------------------------------------------
// Dates & Rendering
// -----------------------------------------------------------------------------

const (
	DateFormatISO       = "2006-01-02"
	DateFormatBasic     = "20060102"
	DateFormatInput     = "02.01.2006"
	FormatDateInput     = "%02d.%02d.%04d"
	DateInputSeparator  = "."
	DateInputParts      = 3
	MinBirthdayYear     = 1
	HoursPerDay         = 24
	FormatRecordSummary = "Name: %s (Birthday: %s); Phone: %s"
	NoBirthdayDisplay   = "none"
	PhoneListSeparator  = ", "
	RecordSeparator     = "\n"
)

// -----------------------------------------------------------------------------
// Interactive Assistant
// -----------------------------------------------------------------------------

const (
	ReplPrompt = ">>> "

	// Command words. Multi-word commands are matched before their prefixes.
	BotCmdHello    = "hello"
	BotCmdHelp     = "help"
	BotCmdAdd      = "add"
	BotCmdChange   = "change"
	BotCmdRemove   = "remove"
	BotCmdDelete   = "delete"
	BotCmdBirthday = "birthday"
	BotCmdDays     = "days"
	BotCmdPhone    = "phone"
	BotCmdShowAll  = "show all"
	BotCmdPage     = "page"
	BotCmdSave     = "save"
	BotCmdExit     = "exit"
	BotCmdClose    = "close"
	BotCmdGoodBye  = "good bye"

	// Usage lines are syntax, not prose, and stay untranslated.
	UsageAdd      = "add <name> <phone> [dd.mm.yyyy]"
	UsageChange   = "change <name> <old phone> <new phone>"
	UsageRemove   = "remove <name> <phone>"
	UsageDelete   = "delete <name>"
	UsageBirthday = "birthday <name> <dd.mm.yyyy>"
	UsageDays     = "days <name>"
	UsagePhone    = "phone <name>"
	UsagePage     = "page [count] [offset]"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyGreeting        = "greeting"
	TKeyHelp            = "help"
	TKeyFarewell        = "farewell"
	TKeyUnknownCommand  = "unknown_command" // Requires Command
	TKeyUsage           = "usage"           // Requires Usage
	TKeyPhoneCreated    = "phone_created"   // Requires Name, Phone
	TKeyPhoneAdded      = "phone_added"     // Requires Name, Phone
	TKeyPhoneChanged    = "phone_changed"   // Requires Name, Old, New
	TKeyPhoneRemoved    = "phone_removed"   // Requires Name, Phone
	TKeyRecordDeleted   = "record_deleted"  // Requires Name
	TKeyBirthdaySet     = "birthday_set"    // Requires Name, Date
	TKeyDaysLeft        = "days_left"       // Requires Name, PluralCount
	TKeyBirthdayToday   = "birthday_today"  // Requires Name
	TKeyEmptyBook       = "empty_book"
	TKeySaved           = "saved"               // Requires Path
	TKeyEvtSummaryAge   = "event_summary_age"   // Requires Name, Age
	TKeyEvtSummaryBirth = "event_summary_birth" // Requires Name

	// Error replies. Value carries the offending input.
	TKeyErrPhoneFormat    = "err_phone_format"
	TKeyErrPhoneShort     = "err_phone_short"
	TKeyErrPhoneLong      = "err_phone_long"
	TKeyErrCountryCode    = "err_country_code"
	TKeyErrBirthdayFormat = "err_birthday_format"
	TKeyErrContactMissing = "err_contact_missing"
	TKeyErrPhoneMissing   = "err_phone_missing"
	TKeyErrNoBirthday     = "err_no_birthday"
	TKeyErrDuplicatePhone = "err_duplicate_phone"
	TKeyErrEmptyName      = "err_empty_name"
	TKeyErrNumber         = "err_number"
	TKeyErrSaveDisabled   = "err_save_disabled"
	TKeyErrInternal       = "err_internal"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultLanguage     = "en"
	DefaultPort         = 18081
	DefaultPageSize     = 10
	DefaultRefreshMin   = 0
	DefaultReminderDays = 0
	MaxReminderDays     = 30
	MaxPageSize         = 1000
	UIDNamespace        = "go-contactbook-v1"
	DisabledInterval    = 0
)

// SupportedLanguages defines the list of available reply languages (ISO 639-1).
var SupportedLanguages = []string{"en", "uk"}

// ISO8601 Duration Components for Reminders
const (
	ISONegativePrefix = "-P"
	ISODay            = "D"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Contactbook//Engine//EN"
	ICalCalName   = "Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "gocontactbook"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	// vCard Fields
	VCardVersion      = "VERSION"
	VCardVersionValue = "4.0"
	VCardBDAY         = "BDAY"
	VCardFN           = "FN"
	VCardN            = "N"
	VCardTEL          = "TEL"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// UID Generation
	FormatUIDInput = "%s|%s"
	FormatUID      = "%s-%d@%s"

	// Limits
	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	MaxRedirects        = 5
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteCalendar       = "/calendar.ics"
	RouteContacts       = "/contacts.vcf"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderAccept          = "Accept"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextVCard       = "text/vcard; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrPhoneFormat     = "phone number contains invalid characters"
	ErrPhoneLength     = "phone number must have 10 or 12 digits"
	ErrPhoneShort      = "too short"
	ErrPhoneLong       = "too long"
	ErrCountryCode     = "country code must be exactly 2 digits"
	ErrBirthdayFormat  = "birthday must be a valid date in format dd.mm.yyyy"
	ErrNotFound        = "not found"
	ErrContactNotFound = "contact"
	ErrPhoneNotFound   = "phone number"
	ErrNoBirthday      = "birthday is not set"
	ErrDuplicatePhone  = "phone number already exists"
	ErrEmptyName       = "contact name is empty"

	ErrWebURLEmpty     = "configuration error: source URL is empty"
	ErrFetcherMissing  = "internal error: network fetcher is not initialized"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrHostMissing     = "URL has no host"
	ErrRequest         = "failed to create request"
	ErrNetwork         = "network error during fetch"
	ErrHTTPStatus      = "server returned unexpected status"
	ErrTooLarge        = "remote address book exceeds the size limit"
	ErrRedirect        = "redirect leaves http/https"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrVCardEncode     = "failed to encode vCard data"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrLoadBook        = "failed to load address book"
	ErrSaveBook        = "failed to save address book"
	ErrImport          = "failed to import remote contacts"
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrSettingsLoad    = "failed to load settings"
	ErrSettingsInvalid = "invalid settings"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrConfigDir       = "could not determine user config dir"
	ErrCreateDir       = "could not create app directory"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrWriteOutput     = "failed to write output"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrUserRequired    = "user name is required"
	ErrPasswordEmpty   = "password is empty"
	ErrKeyringStore    = "failed to store password in keyring"
	ErrReadInput       = "failed to read input"
	ErrNotNumber       = "not a number"
	ErrNoSaver         = "saving is disabled"
	ErrLangUnknown     = "unsupported language"
	ErrPublish         = "failed to publish feeds"
	ErrImportSkipped   = "remote import failed, continuing with local data"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummaryAge   = "Birthday: %s (%d)"
	FallbackSummaryBirth = "Birthday: %s (birth)"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgAppStop       = "Application stopped gracefully"
	MsgAppStarting   = "Starting application"
	MsgCtxCancel     = "Context cancelled, leaving assistant loop"
	MsgWorkerStart   = "Refresh worker started"
	MsgWorkerStop    = "Refresh worker stopping due to context cancellation"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedPhone  = "Skipping invalid phone number"
	MsgSkippedDate   = "Skipping invalid birthday"
	MsgSkippedName   = "Skipping vCard without a name"
	MsgGenSuccess    = "Calendar generation successful"
	MsgBdayToday     = "Birthday found today"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Feed cache updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgPassStored    = "Password stored in keyring"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgBookLoaded    = "Address book loaded"
	MsgBookMissing   = "Address book file not found, starting empty"
	MsgBookSaved     = "Address book saved"
	MsgRecordAdded   = "Record stored"
	MsgRecordDeleted = "Record deleted"
	MsgCommand       = "Command handled"
	MsgCommandFailed = "Command rejected"
	MsgImportDone    = "Remote contacts imported"
	MsgFetchStart    = "Requesting remote address book"
	MsgFetchStatus   = "Server returned error status"
	MsgDuplicateName = "Merging vCards that share a name"
	MsgEnvLoaded     = "Environment file loaded"
	MsgFeedPublished = "Feeds published"
	MsgOutputWritten = "Output written"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyPath      = "path"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyInterval  = "interval"
	LogKeyUser      = "user"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "birthdays_found"
	LogKeyToday     = "birthdays_today"
	LogKeyRecords   = "records"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyRoute     = "route"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyPhone     = "phone"
	LogKeyCommand   = "command"
	LogKeyArgs      = "args"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain     = "main"
	CompBot      = "bot"
	CompContacts = "contacts"
	CompConfig   = "config"
	CompEngine   = "engine"
	CompStore    = "store"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompWorker   = "worker"
	CompI18n     = "i18n"
)
