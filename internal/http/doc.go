// Package http provides optional HTTP adapters for the mini-site module.
//
// Public site routes render HTML:
//   - Directory index: /
//   - Mini-site by slug: /{town}/{listing}, /{town}/{listing}/{page}
//   - Mini-site by id: /listing?id={id}[&page={page}]
//
// Admin routes speak JSON and mount under /admin/api/entities/{type}/{id}:
//   - Dashboard: /dashboard
//   - Pages: /pages, /pages/{pageID}, /pages/order
//   - Navigation: /navigation, /navigation/{itemID}
//   - Photos: /photos, /photos/{photoID}, /photos/order
//
// Host applications can register handlers on their own mux/router as needed.
package http
