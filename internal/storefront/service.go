package storefront

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/partsdesk-backend/internal/cart"
	"github.com/angelmondragon/partsdesk-backend/internal/catalog"
	"github.com/angelmondragon/partsdesk-backend/internal/order"
	"github.com/angelmondragon/partsdesk-backend/internal/session"
	pkgerrors "github.com/angelmondragon/partsdesk-backend/pkg/errors"
	"github.com/angelmondragon/partsdesk-backend/pkg/logger"
	"github.com/angelmondragon/partsdesk-backend/pkg/metrics"
	"github.com/angelmondragon/partsdesk-backend/pkg/money"
	"github.com/angelmondragon/partsdesk-backend/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CatalogSource serves cached catalog snapshots.
type CatalogSource interface {
	Get(ctx context.Context) catalog.Snapshot
	Refresh(ctx context.Context) catalog.Snapshot
}

// ServiceParams groups dependencies for the storefront service.
type ServiceParams struct {
	Catalog         CatalogSource
	Formatter       *order.Formatter
	MessagingURL    string
	RecipientNumber string
	Currency        string
	PageSize        int
	AllOrigins      string
	Metrics         *metrics.CatalogMetrics
	Logger          *logger.Logger
}

// Service applies UI events to a session's state. Callers own loading and
// saving the state; nothing here touches a session store.
type Service interface {
	View(ctx context.Context, st *session.State) (CatalogViewDTO, error)
	Origins(ctx context.Context) (OriginsDTO, error)
	SetSearch(ctx context.Context, st *session.State, query string) (CatalogViewDTO, error)
	SetOriginFilter(ctx context.Context, st *session.State, origin string) (CatalogViewDTO, error)
	SetPage(ctx context.Context, st *session.State, page int) (CatalogViewDTO, error)
	Increment(ctx context.Context, st *session.State, productID int) (CartDTO, error)
	Decrement(ctx context.Context, st *session.State, productID int) (CartDTO, error)
	Adjust(ctx context.Context, st *session.State, productID, delta int) (CartDTO, error)
	ResetCart(ctx context.Context, st *session.State) (CartDTO, error)
	Cart(ctx context.Context, st *session.State) (CartDTO, error)
	Checkout(ctx context.Context, st *session.State, at time.Time) (OrderDTO, error)
	Refresh(ctx context.Context) (CatalogStatusDTO, error)
}

type service struct {
	catalog    CatalogSource
	formatter  *order.Formatter
	baseURL    string
	recipient  string
	currency   string
	pageSize   int
	allOrigins string
	metrics    *metrics.CatalogMetrics
	logg       *logger.Logger
}

// NewService builds a storefront service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog source is required")
	}
	if strings.TrimSpace(params.MessagingURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "messaging url is required")
	}
	if strings.TrimSpace(params.RecipientNumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipient number is required")
	}
	formatter := params.Formatter
	if formatter == nil {
		formatter = order.NewFormatter(order.Options{})
	}
	currency := params.Currency
	if currency == "" {
		currency = order.DefaultLabels.Currency
	}
	allOrigins := params.AllOrigins
	if allOrigins == "" {
		allOrigins = catalog.AllOrigins
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	if params.PageSize > pagination.MaxPageSize {
		logg.Warn(logg.WithFields(context.Background(), map[string]any{
			"page_size": params.PageSize,
			"max":       pagination.MaxPageSize,
		}), "storefront.page_size_capped")
	}
	return &service{
		catalog:    params.Catalog,
		formatter:  formatter,
		baseURL:    params.MessagingURL,
		recipient:  params.RecipientNumber,
		currency:   currency,
		pageSize:   pagination.NormalizeSize(params.PageSize),
		allOrigins: allOrigins,
		metrics:    params.Metrics,
		logg:       logg,
	}, nil
}

// View renders the session's current page. An out-of-range page is reset to
// the first one and written back to the state.
func (s *service) View(ctx context.Context, st *session.State) (CatalogViewDTO, error) {
	if err := requireState(st); err != nil {
		return CatalogViewDTO{}, err
	}
	snap := s.catalog.Get(ctx)
	if snap.Err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "stale", snap.Stale), "storefront.catalog_degraded")
	}

	view := CatalogViewDTO{
		Available: snap.Available(),
		Search:    st.Search,
		Origin:    s.originLabel(st.Origin),
		Origins:   origins(snap.Catalog),
		Sections:  []SectionDTO{},
		Cart:      s.cartDTO(st.Cart),
	}

	filtered := snap.Catalog.Find(catalog.Query{Search: st.Search, Origin: st.Origin})
	rows, meta := pagination.Paginate(filtered, st.Page, s.pageSize)
	st.Page = meta.Index

	view.Sections = s.sections(rows, st.Cart)
	view.Page = meta.ToPageMeta()
	view.Navigation = navigation(meta)
	view.Summary = fmt.Sprintf("📊 عرض %d من أصل %d منتج | صفحة %d من %d", len(rows), meta.TotalItems, meta.Index+1, meta.TotalPages)

	switch {
	case !view.Available:
		view.Message = UnavailableMessage
	case len(rows) == 0:
		view.Message = NoMatchesMessage
	}
	return view, nil
}

// Origins lists the filter choices.
func (s *service) Origins(ctx context.Context) (OriginsDTO, error) {
	snap := s.catalog.Get(ctx)
	return OriginsDTO{All: s.allOrigins, Origins: origins(snap.Catalog)}, nil
}

// SetSearch stores the search text and returns to the first page.
func (s *service) SetSearch(ctx context.Context, st *session.State, query string) (CatalogViewDTO, error) {
	if err := requireState(st); err != nil {
		return CatalogViewDTO{}, err
	}
	query = strings.TrimSpace(query)
	if query != st.Search {
		st.Page = 0
	}
	st.Search = query
	return s.View(ctx, st)
}

// SetOriginFilter stores the origin filter and returns to the first page.
// Any "all" alias clears the filter.
func (s *service) SetOriginFilter(ctx context.Context, st *session.State, origin string) (CatalogViewDTO, error) {
	if err := requireState(st); err != nil {
		return CatalogViewDTO{}, err
	}
	origin = strings.TrimSpace(origin)
	if catalog.IsAllOrigins(origin) || origin == s.allOrigins {
		origin = ""
	}
	if origin != st.Origin {
		st.Page = 0
	}
	st.Origin = origin
	return s.View(ctx, st)
}

// SetPage moves to a zero-based page index; View clamps it.
func (s *service) SetPage(ctx context.Context, st *session.State, page int) (CatalogViewDTO, error) {
	if err := requireState(st); err != nil {
		return CatalogViewDTO{}, err
	}
	st.Page = page
	return s.View(ctx, st)
}

func (s *service) Increment(ctx context.Context, st *session.State, productID int) (CartDTO, error) {
	return s.Adjust(ctx, st, productID, 1)
}

func (s *service) Decrement(ctx context.Context, st *session.State, productID int) (CartDTO, error) {
	return s.Adjust(ctx, st, productID, -1)
}

// Adjust changes the quantity of the product with productID. Unknown
// products leave the cart untouched.
func (s *service) Adjust(ctx context.Context, st *session.State, productID, delta int) (CartDTO, error) {
	if err := requireState(st); err != nil {
		return CartDTO{}, err
	}
	snap := s.catalog.Get(ctx)
	product, ok := snap.Catalog.ByID(productID)
	if !ok {
		s.logg.Debug(s.logg.WithField(ctx, "product_id", productID), "storefront.unknown_product")
		return s.cartDTO(st.Cart), nil
	}

	qty := st.Cart.Adjust(product.Name, product.Price, delta)
	s.metrics.ObserveMutation(delta)

	dto := s.cartDTO(st.Cart)
	dto.Quantity = &qty
	return dto, nil
}

// ResetCart starts a new order.
func (s *service) ResetCart(_ context.Context, st *session.State) (CartDTO, error) {
	if err := requireState(st); err != nil {
		return CartDTO{}, err
	}
	st.Cart.Reset()
	return s.cartDTO(st.Cart), nil
}

func (s *service) Cart(_ context.Context, st *session.State) (CartDTO, error) {
	if err := requireState(st); err != nil {
		return CartDTO{}, err
	}
	return s.cartDTO(st.Cart), nil
}

// Checkout formats the order message and its deep link. The cart is left
// as is so the customer can resend.
func (s *service) Checkout(ctx context.Context, st *session.State, at time.Time) (OrderDTO, error) {
	if err := requireState(st); err != nil {
		return OrderDTO{}, err
	}
	if st.Cart.Empty() {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	message := s.formatter.Format(st.Cart.SelectedItems(), st.Cart, at)
	link, err := order.Link(s.baseURL, s.recipient, message)
	if err != nil {
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build order link")
	}
	s.metrics.IncOrders()

	totals := st.Cart.Totals()
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"items": totals.Items,
		"units": totals.Units,
		"cost":  totals.Cost.String(),
	}), "storefront.order_formatted")

	return OrderDTO{Message: message, Link: link, Cart: s.cartDTO(st.Cart)}, nil
}

// Refresh drops the cached catalog and reloads it. A failed reload is
// reported in the status, not as an error.
func (s *service) Refresh(ctx context.Context) (CatalogStatusDTO, error) {
	snap := s.catalog.Refresh(ctx)
	status := CatalogStatusDTO{
		Available:  snap.Available(),
		Stale:      snap.Stale,
		Products:   snap.Catalog.Len(),
		Categories: snap.Catalog.Categories(),
		Report:     snap.Report,
	}
	if status.Categories == nil {
		status.Categories = []string{}
	}
	if !snap.FetchedAt.IsZero() {
		fetched := snap.FetchedAt
		status.FetchedAt = &fetched
	}
	if snap.Err != nil {
		status.Error = UnavailableMessage
	}
	return status, nil
}

func (s *service) originLabel(origin string) string {
	if origin == "" {
		return s.allOrigins
	}
	return origin
}

// sections opens a new section whenever a row carries a non-empty category
// different from the one currently open.
func (s *service) sections(rows []catalog.Product, ledger *cart.Ledger) []SectionDTO {
	out := []SectionDTO{}
	current := ""
	for _, p := range rows {
		if len(out) == 0 || (p.Category != "" && p.Category != current) {
			if p.Category != "" {
				current = p.Category
			}
			out = append(out, SectionDTO{Category: current, Products: []ProductRowDTO{}})
		}
		qty := ledger.Quantity(p.Name)
		price := p.Price
		if captured, ok := ledger.UnitPrice(p.Name); ok {
			price = captured
		}
		subtotal := price.Mul(decimal.NewFromInt(int64(qty)))
		last := &out[len(out)-1]
		last.Products = append(last.Products, ProductRowDTO{
			ID:              p.ID,
			Name:            p.Name,
			Origin:          p.Origin,
			Category:        p.Category,
			Price:           p.Price,
			PriceDisplay:    money.Display(p.Price) + " " + s.currency,
			Quantity:        qty,
			Subtotal:        subtotal,
			SubtotalDisplay: money.Display(subtotal) + " " + s.currency,
		})
	}
	return out
}

func (s *service) cartDTO(ledger *cart.Ledger) CartDTO {
	totals := ledger.Totals()
	lines := []CartLineDTO{}
	for _, line := range ledger.SelectedItems() {
		lines = append(lines, CartLineDTO{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal(),
		})
	}
	return CartDTO{
		Lines:       lines,
		Items:       totals.Items,
		Units:       totals.Units,
		Cost:        totals.Cost,
		CostDisplay: money.Display(totals.Cost) + " " + s.currency,
		Currency:    s.currency,
	}
}

func navigation(meta pagination.Meta) NavigationDTO {
	return NavigationDTO{
		First: NavLinkDTO{Page: 1, Disabled: !meta.HasPrev()},
		Prev:  NavLinkDTO{Page: meta.Prev() + 1, Disabled: !meta.HasPrev()},
		Next:  NavLinkDTO{Page: meta.Next() + 1, Disabled: !meta.HasNext()},
		Last:  NavLinkDTO{Page: meta.Last() + 1, Disabled: !meta.HasNext()},
	}
}

func origins(cat *catalog.Catalog) []string {
	out := cat.DistinctOrigins()
	if out == nil {
		return []string{}
	}
	return out
}

func requireState(st *session.State) error {
	if st == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "session state missing")
	}
	if st.Cart == nil {
		st.Cart = cart.New()
	}
	return nil
}
