// Package config loads snapp.json, the project file read by the snapp CLI.
//
//	{
//	  "name": "counter",
//	  "document": "index.html",
//	  "target": "#snapp-body",
//	  "mode": "replaceChildren",
//	  "logLevel": "info",
//	  "sweep": {
//	    "delayMs": 15000,
//	    "threshold": 30
//	  },
//	  "preview": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "metrics": true
//	  },
//	  "publish": {
//	    "bucket": "my-site",
//	    "prefix": "pages/",
//	    "region": "eu-west-1"
//	  }
//	}
//
// Every field is optional. Missing values take the defaults declared in
// this package.
package config
