// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package config loads and validates the service configuration.
//
// Configuration is layered with Koanf v2, lowest priority first:
//
//  1. Built-in defaults (defaultConfig)
//  2. An optional YAML file (CONFIG_PATH, then config.yaml / config.yml,
//     then /etc/marquee/config.yaml)
//  3. Environment variables
//
// Environment variables use flat, upper-case names mapped explicitly to
// config paths (see envTransformFunc). Unmapped variables are ignored.
//
// Commonly used variables:
//
//	MONGO_URI             store.mongo_uri
//	STORE_DRIVER          store.driver (mongo or badger)
//	JWT_SECRET            security.jwt_secret (32+ characters)
//	HTTP_PORT             server.port
//	CORS_ORIGINS          security.cors_origins (comma separated)
//	CATALOG_PAGE_SIZE     catalog.page_size
//	LOG_LEVEL, LOG_FORMAT logging.level, logging.format
//
// Example config.yaml:
//
//	server:
//	  port: 8000
//	store:
//	  driver: mongo
//	  mongo_uri: mongodb://localhost:27017
//	  database: fletnix
//	security:
//	  jwt_secret: change-me-to-a-long-random-secret-value
//	  cors_origins: ["*"]
package config
