package dealing

import "errors"

// Kinds of classified platform errors. Match them with errors.Is.
var (
	ErrAPIKeyDisabled                         = errors.New("api key disabled")
	ErrAPIKeyInvalid                          = errors.New("api key invalid")
	ErrAPIKeyMissing                          = errors.New("api key missing")
	ErrAPIKeyRejected                         = errors.New("api key rejected")
	ErrAPIKeyRestricted                       = errors.New("api key restricted")
	ErrAPIKeyRevoked                          = errors.New("api key revoked")
	ErrAccountAccessDenied                    = errors.New("account access denied")
	ErrAccountAlreadyCurrent                  = errors.New("account already current")
	ErrAccountMigrated                        = errors.New("account migrated")
	ErrAccountNotYetActivated                 = errors.New("account not yet activated")
	ErrAccountSuspended                       = errors.New("account suspended")
	ErrAccountTokenInvalid                    = errors.New("account token invalid")
	ErrAccountTokenMissing                    = errors.New("account token missing")
	ErrAllAccountsPending                     = errors.New("all accounts pending")
	ErrAllAccountsSuspended                   = errors.New("all accounts suspended")
	ErrAuthenticationTimeout                  = errors.New("authentication timeout")
	ErrCannotDeleteWatchlist                  = errors.New("cannot delete watchlist")
	ErrCannotSetDefaultAccount                = errors.New("cannot set default account")
	ErrClientSuspended                        = errors.New("client suspended")
	ErrClientTokenInvalid                     = errors.New("client token invalid")
	ErrClientTokenMissing                     = errors.New("client token missing")
	ErrDealNotFound                           = errors.New("deal not found")
	ErrDuplicateWatchlistName                 = errors.New("duplicate watchlist name")
	ErrEPICNotFound                           = errors.New("epic not found")
	ErrEncryptionRequired                     = errors.New("encryption required")
	ErrExceededAPIKeyAllowance                = errors.New("exceeded api key allowance")
	ErrExceededAccountAllowance               = errors.New("exceeded account allowance")
	ErrExceededAccountHistoricalDataAllowance = errors.New("exceeded account historical data allowance")
	ErrExceededAccountTradingAllowance        = errors.New("exceeded account trading allowance")
	ErrGetSessionTimeout                      = errors.New("get session timeout")
	ErrInstrumentNotFound                     = errors.New("instrument not found")
	ErrInvalidAPIKeyForClient                 = errors.New("invalid api key for client")
	ErrInvalidAccountID                       = errors.New("invalid account id")
	ErrInvalidApplication                     = errors.New("invalid application")
	ErrInvalidClientAccount                   = errors.New("invalid client account")
	ErrInvalidCredentials                     = errors.New("invalid credentials")
	ErrInvalidDateRange                       = errors.New("invalid date range")
	ErrInvalidInput                           = errors.New("invalid input")
	ErrInvalidPageSize                        = errors.New("invalid page size")
	ErrInvalidShareOrderInstrumentData        = errors.New("invalid share order instrument data")
	ErrInvalidURL                             = errors.New("invalid url")
	ErrInvalidWatchlist                       = errors.New("invalid watchlist")
	ErrInvalidWebsite                         = errors.New("invalid website")
	ErrKYCRequiredForAccount                  = errors.New("kyc required for account")
	ErrMalformedDate                          = errors.New("malformed date")
	ErrMarketOrdersNotSupported               = errors.New("market orders not supported")
	ErrMissingCredentials                     = errors.New("missing credentials")
	ErrOAuthTokenInvalid                      = errors.New("oauth token invalid")
	ErrPendingAgreements                      = errors.New("pending agreements")
	ErrPosition                               = errors.New("position error")
	ErrPositionNotFound                       = errors.New("position not found")
	ErrPreferredAccountDisabled               = errors.New("preferred account disabled")
	ErrPreferredAccountNotSet                 = errors.New("preferred account not set")
	ErrSecurity                               = errors.New("security error")
	ErrSprintMarketInvalidOrderSize           = errors.New("invalid sprint market order size")
	ErrSprintMarketPositionCreate             = errors.New("could not create sprint market position")
	ErrSprintMarketPositionInvalidExpiry      = errors.New("invalid sprint market position expiry")
	ErrStockbrokingNotSupported               = errors.New("stockbroking not supported")
	ErrSystem                                 = errors.New("system error")
	ErrTooManyEPICs                           = errors.New("too many epics")
	ErrTooManyFailedLoginAttempts             = errors.New("too many failed login attempts")
	ErrTooManyMarkets                         = errors.New("too many markets")
	ErrUnauthorisedAccessToEquity             = errors.New("unauthorised access to equity")
	ErrUnsupportedEPIC                        = errors.New("unsupported epic")
	ErrWatchlist                              = errors.New("watchlist error")
	ErrWatchlistInvalidEPIC                   = errors.New("invalid watchlist epic")
	ErrWatchlistNotFound                      = errors.New("watchlist not found")
)

var errorCodes = map[string]error{
	"authentication.failure.not-a-client-account":                          ErrInvalidClientAccount,
	"endpoint.unavailable.for.api-key":                                     ErrAPIKeyRejected,
	"error.confirms.deal-not-found":                                        ErrDealNotFound,
	"error.invalid.daterange":                                              ErrInvalidDateRange,
	"error.invalid.watchlist":                                              ErrInvalidWatchlist,
	"error.malformed.date":                                                 ErrMalformedDate,
	"error.position.notfound":                                              ErrPositionNotFound,
	"error.positions.generic":                                              ErrPosition,
	"error.public-api.epic-not-found":                                      ErrEPICNotFound,
	"error.public-api.exceeded-account-allowance":                          ErrExceededAccountAllowance,
	"error.public-api.exceeded-account-historical-data-allowance":          ErrExceededAccountHistoricalDataAllowance,
	"error.public-api.exceeded-account-trading-allowance":                  ErrExceededAccountTradingAllowance,
	"error.public-api.exceeded-api-key-allowance":                          ErrExceededAPIKeyAllowance,
	"error.public-api.failure.encryption.required":                         ErrEncryptionRequired,
	"error.public-api.failure.kyc.required":                                ErrKYCRequiredForAccount,
	"error.public-api.failure.missing.credentials":                         ErrMissingCredentials,
	"error.public-api.failure.pending.agreements.required":                 ErrPendingAgreements,
	"error.public-api.failure.preferred.account.disabled":                  ErrPreferredAccountDisabled,
	"error.public-api.failure.preferred.account.not.set":                   ErrPreferredAccountNotSet,
	"error.public-api.failure.stockbroking-not-supported":                  ErrStockbrokingNotSupported,
	"error.public-api.too-many-epics":                                      ErrTooManyEPICs,
	"error.request.invalid.date-range":                                     ErrInvalidDateRange,
	"error.request.invalid.page-size":                                      ErrInvalidPageSize,
	"error.security.account-access-denied":                                 ErrAccountAccessDenied,
	"error.security.account-migrated":                                      ErrAccountMigrated,
	"error.security.account-not-yet-activated":                             ErrAccountNotYetActivated,
	"error.security.account-suspended":                                     ErrAccountSuspended,
	"error.security.account-token-invalid":                                 ErrAccountTokenInvalid,
	"error.security.account-token-missing":                                 ErrAccountTokenMissing,
	"error.security.all-accounts-pending":                                  ErrAllAccountsPending,
	"error.security.all-accounts-suspended":                                ErrAllAccountsSuspended,
	"error.security.api-key-disabled":                                      ErrAPIKeyDisabled,
	"error.security.api-key-invalid":                                       ErrAPIKeyInvalid,
	"error.security.api-key-missing":                                       ErrAPIKeyMissing,
	"error.security.api-key-restricted":                                    ErrAPIKeyRestricted,
	"error.security.api-key-revoked":                                       ErrAPIKeyRevoked,
	"error.security.authentication.timeout":                                ErrAuthenticationTimeout,
	"error.security.client-suspended":                                      ErrClientSuspended,
	"error.security.client-token-invalid":                                  ErrClientTokenInvalid,
	"error.security.client-token-missing":                                  ErrClientTokenMissing,
	"error.security.generic":                                               ErrSecurity,
	"error.security.get.session.timeout":                                   ErrGetSessionTimeout,
	"error.security.invalid-application":                                   ErrInvalidApplication,
	"error.security.invalid-details":                                       ErrInvalidCredentials,
	"error.security.invalid-website":                                       ErrInvalidWebsite,
	"error.security.oauth-token-invalid":                                   ErrOAuthTokenInvalid,
	"error.security.too-many-failed-attempts":                              ErrTooManyFailedLoginAttempts,
	"error.service.create.stockbroking.share-order.instrumentdata-invalid": ErrInvalidShareOrderInstrumentData,
	"error.service.watchlists.add-instrument.invalid-epic":                 ErrWatchlistInvalidEPIC,
	"error.sprintmarket.create-position.expiry.outside-valid-range":        ErrSprintMarketPositionInvalidExpiry,
	"error.sprintmarket.create-position.failure":                           ErrSprintMarketPositionCreate,
	"error.sprintmarket.create-position.market-closed":                     ErrSprintMarketPositionInvalidExpiry,
	"error.sprintmarket.create-position.order-size.invalid":                ErrSprintMarketInvalidOrderSize,
	"error.switch.accountId-must-be-different":                             ErrAccountAlreadyCurrent,
	"error.switch.cannot-set-default-account":                              ErrCannotSetDefaultAccount,
	"error.switch.invalid-accountId":                                       ErrInvalidAccountID,
	"error.trading.otc.instrument-not-found":                               ErrInstrumentNotFound,
	"error.trading.otc.market-orders.not-supported":                        ErrMarketOrdersNotSupported,
	"error.unsupported.epic":                                               ErrUnsupportedEPIC,
	"error.watchlists.management.cannot-delete-watchlist":                  ErrCannotDeleteWatchlist,
	"error.watchlists.management.duplicate-name":                           ErrDuplicateWatchlistName,
	"error.watchlists.management.error":                                    ErrWatchlist,
	"error.watchlists.management.watchlist-not-found":                      ErrWatchlistNotFound,
	"invalid.input":                                               ErrInvalidInput,
	"invalid.input.too.many.markets":                              ErrTooManyMarkets,
	"invalid.url":                                                 ErrInvalidURL,
	"service.clientsecurity.error.authentication.failure-generic": ErrSecurity,
	"system.error":                            ErrSystem,
	"unauthorised.access.to.equity.exception": ErrUnauthorisedAccessToEquity,
	"unauthorised.api-key.revoked":            ErrAPIKeyRevoked,
	"unauthorised.clientId.api-key.mismatch":  ErrInvalidAPIKeyForClient,
}
