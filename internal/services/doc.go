// Package services defines the collaborator contracts the search core
// consumes and implements them for Spotify, Songlink, and MusicBrainz.
//
// # Contracts
//
// Three narrow interfaces cover the backends:
//   - [CatalogService] : primary candidate lookup (and full-record fetch)
//   - [LinkResolver] : cross-platform link resolution
//   - [CreditsService] : credits/metadata lookup by ISRC
//
// Only catalog failures are fatal to a search session. The enrichment
// implementations return their type's canonical empty value alongside any
// error; callers log the error and keep the empty value.
//
// # Spotify
//
// [SpotifyService] authenticates with the OAuth2 client-credentials grant
// via [clientcredentials.Config]; the derived http.Client caches and
// refreshes the bearer token transparently. Search requests 20 track
// candidates; Track fetches the full record used as the enrichment fallback
// source (duration, label, copyright).
//
// # Songlink
//
// [SonglinkService] queries the Odesli links endpoint and extracts the
// Apple Music, Spotify, Tidal, and YouTube entries. Any failure yields nil
// links.
//
// # MusicBrainz
//
// [MusicBrainzService] resolves an ISRC to songwriter/producer/release
// credits. MusicBrainz requires an identifying User-Agent and allows one
// request per second; the client enforces that with a [rate.Limiter] shared
// across concurrent lookups. An empty ISRC short-circuits to the empty
// record without a network call.
package services
