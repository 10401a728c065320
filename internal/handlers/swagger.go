package handlers

// @title Movie Catalog API
// @version 1.0
// @description Read-only lookup of movies and their cast members

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @tag.name movies
// @tag.description Movie and cast lookups
