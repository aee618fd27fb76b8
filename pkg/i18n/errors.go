package i18n

import "errors"

var (
	ErrNilAdapter           = errors.New("i18n: translation adapter is nil")
	ErrEmptyLanguageCode    = errors.New("i18n: empty language code")
	ErrNilLanguageCatalogue = errors.New("i18n: nil catalogue for language")
	ErrLanguageNotSupported = errors.New("i18n: language not supported")
	ErrFailedToMarshalJSON  = errors.New("i18n: failed to marshal translations to JSON")

	ErrParsingCancelled  = errors.New("i18n: parsing cancelled")
	ErrFailedToParseJSON = errors.New("i18n: failed to parse JSON content")
	ErrFailedToParseYAML = errors.New("i18n: failed to parse YAML content")
	ErrInvalidStructure  = errors.New("i18n: invalid catalogue structure")
	ErrUnsupportedFormat = errors.New("i18n: unsupported translation file format")

	ErrLoadingCancelled = errors.New("i18n: loading translations cancelled")
	ErrFailedToReadFile = errors.New("i18n: failed to read translation file")
	ErrFailedToReadDir  = errors.New("i18n: failed to read translation directory")
	ErrEmptyPath        = errors.New("i18n: translation path is empty")
)
