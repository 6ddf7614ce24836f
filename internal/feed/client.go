// Package feed queries the external KURT reservation web service for the
// raw per-resource reservation records of one day.  The package owns the
// wire contract only: transport failures surface as a typed FetchError for
// the caller to display and manually retry, and a payload that cannot be
// decoded counts as zero usable events rather than failing the query.
// Nothing here retries, caches or backs off.
package feed

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strings"
    "time"

    "github.com/iliyamo/library-seat-availability/internal/model"
)

// DefaultBaseURL is the production endpoint of the KURT reservation
// service.
const DefaultBaseURL = "https://wsrt.ghum.kuleuven.be/service1.asmx"

// stampLayout is the datetime shape of the startdtstring/enddtstring query
// parameters and the Startdatetime field of feed records.
const stampLayout = "2006-01-02T15:04:05"

// ErrUserRejected is returned when the feed answers with an empty record
// list for a non-empty catalog.  KURT responds that way when it does not
// recognize the user number instead of returning an error status.
var ErrUserRejected = errors.New("user number rejected by the reservation system")

// FetchError wraps an upstream transport or status failure.  The message
// and cause are surfaced verbatim to the caller; the core never retries.
type FetchError struct {
    Status int   // HTTP status code, 0 when the request never completed
    Err    error // underlying cause
}

func (e *FetchError) Error() string {
    if e.Status != 0 {
        return fmt.Sprintf("reservation feed returned status %d", e.Status)
    }
    return fmt.Sprintf("reservation feed unreachable: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client talks to the reservation feed.  The zero value is not usable;
// construct with NewClient.
type Client struct {
    baseURL string
    http    *http.Client
}

// NewClient returns a Client for the given base URL (DefaultBaseURL when
// empty).  The 15 second client timeout is all the timeout logic there
// is.
func NewClient(baseURL string) *Client {
    if baseURL == "" {
        baseURL = DefaultBaseURL
    }
    return &Client{
        baseURL: strings.TrimRight(baseURL, "/"),
        http:    &http.Client{Timeout: 15 * time.Second},
    }
}

// wireReservation mirrors one record of the GetReservationsJSON response.
type wireReservation struct {
    ResourceID    json.Number `json:"ResourceID"`
    StartDatetime string      `json:"Startdatetime"`
    Status        string      `json:"Status"`
}

// Reservations fetches the raw reservation records for the resource IDs
// over the half-open day window [date 00:00, date+1 00:00).  uid must be a
// normalized user number; the caller validates it before any upstream
// contact.  Records with a malformed timestamp are kept with a zero Start
// so the parser can skip them individually.
func (c *Client) Reservations(ctx context.Context, resourceIDs []string, date time.Time, uid string) ([]model.RawReservation, error) {
    dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

    q := url.Values{}
    q.Set("uid", uid)
    q.Set("ResourceIDList", strings.Join(resourceIDs, ","))
    q.Set("startdtstring", dayStart.Format(stampLayout))
    q.Set("enddtstring", dayStart.AddDate(0, 0, 1).Format(stampLayout))

    reqURL := c.baseURL + "/GetReservationsJSON?" + q.Encode()
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
    if err != nil {
        return nil, &FetchError{Err: err}
    }

    resp, err := c.http.Do(req)
    if err != nil {
        return nil, &FetchError{Err: err}
    }
    defer resp.Body.Close()

    if resp.StatusCode != http.StatusOK {
        return nil, &FetchError{Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
    }

    body, err := io.ReadAll(resp.Body)
    if err != nil {
        return nil, &FetchError{Err: err}
    }

    var wire []wireReservation
    if err := json.Unmarshal(body, &wire); err != nil {
        // payload not in the expected shape: zero usable events
        wire = nil
    }

    if len(wire) == 0 && len(resourceIDs) > 0 {
        return nil, ErrUserRejected
    }

    records := make([]model.RawReservation, 0, len(wire))
    for _, w := range wire {
        rec := model.RawReservation{ResourceID: w.ResourceID.String(), Status: w.Status}
        if ts, err := time.ParseInLocation(stampLayout, w.StartDatetime, date.Location()); err == nil {
            rec.Start = ts
        }
        records = append(records, rec)
    }
    return records, nil
}
