package sitesettings

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда настройки сайта еще не созданы
	ErrSettingsNotFound = errors.New("sitesettings.repository: settings not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("sitesettings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("sitesettings.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("sitesettings.repository: failed to scan row")
)
