// Package config provides configuration parsing for routefs projects.
//
// The configuration is stored in routefs.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "my-site",
//	  "port": 3000,
//	  "paths": {
//	    "content": "content",
//	    "static": "static"
//	  },
//	  "static": {
//	    "prefix": "/static/"
//	  },
//	  "dev": {
//	    "port": 3000,
//	    "host": "localhost",
//	    "watch": ["content", "static"],
//	    "hotReload": true
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Content:", cfg.ContentPath())
package config
